package get_available_rooms

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/domain"
	getAvailableRooms "github.com/m04kA/TP-StayService/internal/usecase/get_available_rooms"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidDates      = "некорректные даты, ожидается checkIn и checkOut в формате YYYY-MM-DD"
	msgInvalidRange      = "некорректный интервал дат"
	msgBusinessNotFound  = "бизнес не найден"
	msgBusinessInactive  = "бизнес деактивирован"
)

type Handler struct {
	useCase GetAvailableRoomsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-rooms
// Query params: checkIn, checkOut (обязательные, формат YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-rooms - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Парсим даты из query параметров
	checkIn, err := time.Parse(domain.DateFormat, r.URL.Query().Get("checkIn"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-rooms - Invalid checkIn: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	checkOut, err := time.Parse(domain.DateFormat, r.URL.Query().Get("checkOut"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-rooms - Invalid checkOut: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailableRooms.Request{
		BusinessID: businessID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableRooms.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/available-rooms - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableRooms.ErrBusinessInactive):
			h.logger.Warn("GET /businesses/{id}/available-rooms - Business inactive: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessInactive)

		case errors.Is(err, getAvailableRooms.ErrInvalidDateRange),
			errors.Is(err, getAvailableRooms.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-rooms - Invalid request: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /businesses/{id}/available-rooms - Failed: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-rooms - %d rooms available: business_id=%d",
		len(result.Rooms), businessID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
