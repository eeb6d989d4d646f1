package list_rooms

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
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

// Handle GET /api/v1/businesses/{businessId}/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/rooms - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем список комнат
	result, err := h.service.ListRooms(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/rooms - Failed to list rooms: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/rooms - Rooms listed successfully: business_id=%d, count=%d",
		businessID, len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result.Rooms)
}
