package delete_room

import (
	"context"
)

type RoomService interface {
	DeleteRoom(ctx context.Context, roomID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
