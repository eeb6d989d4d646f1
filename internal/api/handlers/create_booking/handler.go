package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TP-StayService/internal/api/handlers"
	"github.com/m04kA/TP-StayService/internal/api/middleware"
	createBooking "github.com/m04kA/TP-StayService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректные даты, ожидается формат YYYY-MM-DD"
	msgInvalidRange       = "некорректный интервал дат"
	msgUnauthorized       = "требуется аутентификация"
	msgRoomNotFound       = "комната не найдена"
	msgBusinessNotFound   = "бизнес не найден"
	msgBusinessInactive   = "бизнес деактивирован"
	msgRoomNotAvailable   = "комната недоступна на выбранные даты"
	msgBookingConflict    = "конфликт бронирования, попробуйте другие даты"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userID из контекста (устанавливается middleware)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid dates: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrBusinessInactive):
			h.logger.Warn("POST /bookings - Business inactive: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondNotFound(w, msgBusinessInactive)

		case errors.Is(err, createBooking.ErrRoomNotAvailable):
			h.logger.Warn("POST /bookings - Room not available: user_id=%d, room_id=%d, checkIn=%s, checkOut=%s",
				userID, req.RoomID, req.CheckIn, req.CheckOut)
			handlers.RespondConflict(w, msgRoomNotAvailable)

		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Booking conflict: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, createBooking.ErrInvalidDateRange),
			errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid request: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /bookings - Failed: user_id=%d, room_id=%d, error=%v", userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, room_id=%d, total=%s",
		result.ID, userID, result.RoomID, result.TotalPrice.String())
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
