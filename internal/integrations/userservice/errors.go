package userservice

import "errors"

var (
	// ErrGuestNotFound возвращается, когда профиль гостя не найден
	ErrGuestNotFound = errors.New("guest profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен: бронирование создается без
	// денормализованных контактов гостя
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
