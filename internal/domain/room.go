package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room represents a bookable room of a business
type Room struct {
	ID         int64
	BusinessID int64 // ID бизнеса-владельца, неизменяемый после создания
	Number     string
	Name       string
	BasePrice  decimal.Decimal // цена за ночь по умолчанию, 2 знака после запятой

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockedDateRange represents a range of dates withheld from booking by the
// business (maintenance, owner use). Полуоткрытый интервал [StartDate, EndDate).
type BlockedDateRange struct {
	ID         int64
	RoomID     int64
	BusinessID int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string

	CreatedAt time.Time
}

// RangesOverlap проверяет пересечение двух полуоткрытых интервалов дат
// [aStart, aEnd) и [bStart, bEnd). Бронирование с выездом в день заезда
// нового гостя пересечением НЕ считается (same-day turnover).
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// NightsBetween возвращает количество ночей между датами заезда и выезда
// Даты нормализуются до полуночи, чтобы время суток не влияло на результат
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// DateOnly обнуляет компонент времени у даты
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
