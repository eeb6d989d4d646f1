package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a stay booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusReserved   BookingStatus = "reserved"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCanceled   BookingStatus = "canceled"
)

// Booking represents a stay booking in the system
// Интервал дат полуоткрытый: ночь даты выезда не оплачивается и не занята
type Booking struct {
	ID         int64
	RoomID     int64
	BusinessID int64
	UserID     int64

	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       BookingStatus

	// Итог расчёта Stay Aggregator на момент создания.
	// Авторитетная сумма к оплате - повторно не пересчитывается.
	TotalPrice decimal.Decimal
	Nights     int

	// Denormalized guest data for history
	GuestName  *string
	GuestPhone *string
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking occupies its date range for
// availability purposes
func (b *Booking) IsBlocking() bool {
	return b.Status != StatusCanceled && b.Status != StatusCheckedOut
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusReserved
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCanceled
}

// OverlapsRange проверяет пересечение бронирования с кандидатным интервалом
// [start, end) по полуоткрытой конвенции
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	return RangesOverlap(b.CheckInDate, b.CheckOutDate, start, end)
}

// ValidStatusTransition проверяет допустимость перехода статуса бронирования
func ValidStatusTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusReserved || to == StatusCanceled
	case StatusReserved:
		return to == StatusCheckedIn || to == StatusCanceled
	case StatusCheckedIn:
		return to == StatusCheckedOut
	default:
		// checked_out и canceled - терминальные статусы
		return false
	}
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	RoomID          *int64         // Фильтр по комнате (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и выехавшие
}
