package get_available_rooms

import (
	"fmt"
	"time"

	"github.com/m04kA/TP-StayService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
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

	return nil
}
