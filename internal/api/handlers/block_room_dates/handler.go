package block_room_dates

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
	msgInvalidDates       = "некорректные даты, ожидается формат YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgBusinessNotFound   = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные параметры блокировки"
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

// Handle POST /api/v1/rooms/{roomId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /rooms/{id}/blocks - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rooms/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req BlockDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(roomID, userID)
	if err != nil {
		h.logger.Warn("POST /rooms/{id}/blocks - Invalid dates: room_id=%d, error=%v", roomID, err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	// Блокируем даты (сервис проверит права менеджера)
	result, err := h.service.BlockDates(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("POST /rooms/{id}/blocks - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, rooms.ErrBusinessNotFound):
			h.logger.Warn("POST /rooms/{id}/blocks - Business not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /rooms/{id}/blocks - Access denied: room_id=%d, user_id=%d", roomID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /rooms/{id}/blocks - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /rooms/{id}/blocks - Failed to block dates: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/{id}/blocks - Dates blocked successfully: block_id=%d, room_id=%d, period=%s to %s",
		result.ID, roomID, result.StartDate, result.EndDate)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
