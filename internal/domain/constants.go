package domain

// Business validation constants
const (
	MaxStayNights               = 365 // максимальная длительность проживания
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 300
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NonBlockingStatuses статусы бронирований, не занимающих даты комнаты
// Используются фильтром доступности и хранилищем при поиске пересечений
var NonBlockingStatuses = []BookingStatus{
	StatusCanceled,
	StatusCheckedOut,
}

// BlockingStatuses статусы бронирований, занимающих даты комнаты
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusReserved,
	StatusCheckedIn,
}
