package create_room

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
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
	msgDuplicateNumber    = "комната с таким номером уже существует"
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

// Handle POST /api/v1/businesses/{businessId}/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/rooms - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/rooms - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаём комнату (сервис проверит права менеджера)
	result, err := h.service.CreateRoom(r.Context(), req.ToServiceRequest(businessID, userID))
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/rooms - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/rooms - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrDuplicateNumber):
			h.logger.Warn("POST /businesses/{id}/rooms - Duplicate room number: business_id=%d, number=%s",
				businessID, req.Number)
			handlers.RespondConflict(w, msgDuplicateNumber)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/rooms - Invalid input: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{id}/rooms - Failed to create room: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/rooms - Room created successfully: room_id=%d, business_id=%d, number=%s",
		result.ID, businessID, result.Number)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
