package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBookingConflict возвращается, когда вставка нарушила ограничение
	// непересечения дат: кто-то успел забронировать комнату раньше.
	// Для вызывающего это повторяемое состояние, а не внутренняя ошибка
	ErrBookingConflict = errors.New("booking.repository: conflicting booking for room and dates")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
