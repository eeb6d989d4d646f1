package quote_stay

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// RuleSetRepository интерфейс репозитория сезонных конфигураций
type RuleSetRepository interface {
	GetActiveByRoom(ctx context.Context, roomID int64) (*domain.SeasonalRuleSet, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
