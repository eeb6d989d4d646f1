package quote_stay

import (
	"fmt"

	"github.com/m04kA/TP-StayService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Котировка прошлых дат допустима: расчёт используется и для истории
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	checkIn := domain.DateOnly(req.CheckIn)
	checkOut := domain.DateOnly(req.CheckOut)

	if !checkOut.After(checkIn) {
		return fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidDateRange)
	}

	if domain.NightsBetween(checkIn, checkOut) > domain.MaxStayNights {
		return fmt.Errorf("%w: stay is limited to %d nights", ErrInvalidDateRange, domain.MaxStayNights)
	}

	return nil
}
