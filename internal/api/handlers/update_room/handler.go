package update_room

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
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgBusinessNotFound   = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные параметры комнаты"
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

// Handle PATCH /api/v1/rooms/{roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /rooms/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем комнату (сервис проверит права менеджера)
	result, err := h.service.UpdateRoom(r.Context(), req.ToServiceRequest(roomID, userID))
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("PATCH /rooms/{id} - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, rooms.ErrBusinessNotFound):
			h.logger.Warn("PATCH /rooms/{id} - Business not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("PATCH /rooms/{id} - Access denied: room_id=%d, user_id=%d", roomID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("PATCH /rooms/{id} - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /rooms/{id} - Failed to update room: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /rooms/{id} - Room updated successfully: room_id=%d, user_id=%d", roomID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
