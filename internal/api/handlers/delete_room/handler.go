package delete_room

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/api/middleware"
	"github.com/m04kA/TP-StayService/internal/service/rooms"
)

const (
	msgInvalidRoomID    = "некорректный ID комнаты"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgRoomNotFound     = "комната не найдена"
	msgBusinessNotFound = "бизнес не найден"
	msgForbidden        = "доступ запрещен"
	msgRoomHasBookings  = "комната имеет активные бронирования"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/rooms/{roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /rooms/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем комнату (сервис проверит права менеджера и активные бронирования)
	err = h.service.DeleteRoom(r.Context(), roomID, userID)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("DELETE /rooms/{id} - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, rooms.ErrBusinessNotFound):
			h.logger.Warn("DELETE /rooms/{id} - Business not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("DELETE /rooms/{id} - Access denied: room_id=%d, user_id=%d", roomID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrRoomHasBookings):
			h.logger.Warn("DELETE /rooms/{id} - Room has active bookings: room_id=%d", roomID)
			handlers.RespondConflict(w, msgRoomHasBookings)

		default:
			h.logger.Error("DELETE /rooms/{id} - Failed to delete room: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /rooms/{id} - Room deleted successfully: room_id=%d, user_id=%d", roomID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
