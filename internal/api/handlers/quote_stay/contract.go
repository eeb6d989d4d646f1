package quote_stay

import (
	"context"

	quoteStay "github.com/m04kA/TP-StayService/internal/usecase/quote_stay"
)

type QuoteStayUseCase interface {
	Execute(ctx context.Context, req *quoteStay.Request) (*quoteStay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
