package get_room_pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/service/pricing"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgRoomNotFound  = "комната не найдена"
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

// Handle GET /api/v1/rooms/{roomId}/pricing
// Отсутствие сезонной конфигурации - валидное состояние: ruleSet будет null
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/pricing - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Получаем тарификацию комнаты
	result, err := h.service.GetRoomRuleSet(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/pricing - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/pricing - Failed to get pricing: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/pricing - Pricing retrieved successfully: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
