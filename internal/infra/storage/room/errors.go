package room

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrRoomHasBookings возвращается при попытке удалить комнату,
	// на которую ссылаются бронирования
	ErrRoomHasBookings = errors.New("room.repository: room is referenced by bookings")

	// ErrDuplicateNumber возвращается при создании комнаты с занятым
	// номером внутри бизнеса
	ErrDuplicateNumber = errors.New("room.repository: room number already exists for business")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("room.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("room.repository: failed to scan row")
)
