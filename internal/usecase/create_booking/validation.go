package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/TP-StayService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	checkIn := domain.DateOnly(req.CheckIn)
	checkOut := domain.DateOnly(req.CheckOut)

	// Полуоткрытый интервал: выезд строго позже заезда
	if !checkOut.After(checkIn) {
		return fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidDateRange)
	}

	if checkIn.Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: checkIn must not be in the past", ErrInvalidDateRange)
	}

	if domain.NightsBetween(checkIn, checkOut) > domain.MaxStayNights {
		return fmt.Errorf("%w: stay is limited to %d nights", ErrInvalidDateRange, domain.MaxStayNights)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are limited to %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
