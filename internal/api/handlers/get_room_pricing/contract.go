package get_room_pricing

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/service/pricing/models"
)

type PricingService interface {
	GetRoomRuleSet(ctx context.Context, roomID int64) (*models.RoomPricingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
