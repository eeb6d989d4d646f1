package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrBlockNotFound возвращается, когда заблокированный диапазон не найден
	ErrBlockNotFound = errors.New("blocked date range not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrRoomHasBookings возвращается при попытке удалить комнату,
	// на которую ссылаются бронирования
	ErrRoomHasBookings = errors.New("room is referenced by bookings")

	// ErrDuplicateNumber возвращается при создании комнаты с занятым номером
	ErrDuplicateNumber = errors.New("room number already exists for business")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
