package block_room_dates

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

type RoomService interface {
	BlockDates(ctx context.Context, req *models.BlockDatesRequest) (*models.BlockedRangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
