package get_available_rooms

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_available_rooms: business not found")

	// ErrBusinessInactive возвращается, когда бизнес деактивирован
	ErrBusinessInactive = errors.New("get_available_rooms: business is inactive")

	// ErrInvalidDateRange возвращается при некорректном интервале дат
	ErrInvalidDateRange = errors.New("get_available_rooms: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_rooms: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_rooms: internal error")
)
