package update_room_pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/api/middleware"
	"github.com/m04kA/TP-StayService/internal/service/pricing"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgRuleSetNotFound    = "сезонная конфигурация не найдена"
	msgBusinessNotFound   = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные параметры конфигурации"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/rooms/{roomId}/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /rooms/{id}/pricing - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /rooms/{id}/pricing - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdatePricingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rooms/{id}/pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем конфигурацию (сервис проверит права менеджера)
	result, err := h.service.UpsertRoomRuleSet(r.Context(), req.ToServiceRequest(roomID, userID))
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrRoomNotFound):
			h.logger.Warn("PUT /rooms/{id}/pricing - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, pricing.ErrRuleSetNotFound):
			h.logger.Warn("PUT /rooms/{id}/pricing - Rule set not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRuleSetNotFound)

		case errors.Is(err, pricing.ErrBusinessNotFound):
			h.logger.Warn("PUT /rooms/{id}/pricing - Business not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, pricing.ErrAccessDenied):
			h.logger.Warn("PUT /rooms/{id}/pricing - Access denied: room_id=%d, user_id=%d", roomID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, pricing.ErrInvalidInput):
			h.logger.Warn("PUT /rooms/{id}/pricing - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /rooms/{id}/pricing - Failed to update pricing: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /rooms/{id}/pricing - Pricing updated successfully: room_id=%d, user_id=%d",
		roomID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
