package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrBusinessInactive возвращается, когда бизнес деактивирован
	ErrBusinessInactive = errors.New("create_booking: business is inactive")

	// ErrRoomNotAvailable возвращается, когда комната занята на запрошенные даты
	ErrRoomNotAvailable = errors.New("create_booking: room is not available for these dates")

	// ErrBookingConflict возвращается, когда параллельное бронирование успело
	// занять даты; запрос можно повторить
	ErrBookingConflict = errors.New("create_booking: concurrent booking conflict")

	// ErrInvalidDateRange возвращается при некорректном интервале дат
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
