package update_room

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

type RoomService interface {
	UpdateRoom(ctx context.Context, req *models.UpdateRoomRequest) (*models.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
