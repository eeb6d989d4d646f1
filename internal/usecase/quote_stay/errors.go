package quote_stay

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("quote_stay: room not found")

	// ErrInvalidDateRange возвращается при некорректном интервале дат
	ErrInvalidDateRange = errors.New("quote_stay: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_stay: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_stay: internal error")
)
