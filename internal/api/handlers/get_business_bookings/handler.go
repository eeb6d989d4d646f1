package get_business_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/api/middleware"
	"github.com/m04kA/TP-StayService/internal/service/bookings"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/bookings
// Query params: roomId, status, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		businessID,
		userID,
		query.Get("roomId"),
		query.Get("status"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования бизнеса (сервис сам проверит права менеджера)
	result, err := h.service.GetBusinessBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/bookings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/bookings - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/bookings - Invalid filter: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/bookings - Failed to get bookings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/bookings - Bookings retrieved successfully: business_id=%d, count=%d",
		businessID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
