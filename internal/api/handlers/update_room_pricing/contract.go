package update_room_pricing

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/service/pricing/models"
)

type PricingService interface {
	UpsertRoomRuleSet(ctx context.Context, req *models.UpsertRuleSetRequest) (*models.RoomPricingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
