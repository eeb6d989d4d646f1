package unblock_room_dates

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

type RoomService interface {
	UnblockDates(ctx context.Context, req *models.UnblockDatesRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
