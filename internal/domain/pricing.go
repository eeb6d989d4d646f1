package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidDateRange возвращается, когда дата выезда не позже даты заезда
var ErrInvalidDateRange = errors.New("domain: check-out date must be after check-in date")

// PriceBreakdownEntry цена одной ночи проживания с указанием сработавшего правила
type PriceBreakdownEntry struct {
	Date    time.Time
	Weekday time.Weekday
	Price   decimal.Decimal
	Tier    Tier
}

// StayPrice результат расчёта стоимости проживания
type StayPrice struct {
	Breakdown []PriceBreakdownEntry
	Total     decimal.Decimal
	Nights    int
}

// ResolveNightlyPrice возвращает цену и тариф одной ночи.
//
// Без активной конфигурации ночь стоит room.BasePrice (тариф default).
// Иначе сезонный кандидат выбирается по приоритету peak > high > low:
// побеждает первый сезон, чьё множество месяцев содержит месяц даты;
// если ни один не подошёл - базовая цена конфигурации (тариф base).
// Надбавка выходного дня заменяет кандидата только если день входит в
// WeekendDays, цена выходного задана И СТРОГО больше сезонной - правило
// выходного дня никогда не удешевляет ночь.
//
// Функция чистая и тотальная: ошибок не возвращает, сравнения цен точные
// десятичные, не плавающая точка.
func ResolveNightlyPrice(room *Room, rs *SeasonalRuleSet, date time.Time) (decimal.Decimal, Tier) {
	if rs == nil || !rs.IsActive {
		return room.BasePrice, TierDefault
	}

	price, tier := rs.BasePrice, TierBase

	month := date.Month()
	switch {
	case rs.PeakPrice != nil && rs.PeakMonths.Contains(month):
		price, tier = *rs.PeakPrice, TierPeakSeason
	case rs.HighPrice != nil && rs.HighMonths.Contains(month):
		price, tier = *rs.HighPrice, TierHighSeason
	case rs.LowPrice != nil && rs.LowMonths.Contains(month):
		price, tier = *rs.LowPrice, TierLowSeason
	}

	if rs.WeekendPrice != nil && rs.WeekendDays.Contains(date.Weekday()) && rs.WeekendPrice.GreaterThan(price) {
		price, tier = *rs.WeekendPrice, TierWeekend
	}

	return price, tier
}

// ComputeStayPrice рассчитывает стоимость проживания по ночам.
//
// Оплачивается каждая дата полуоткрытого интервала [checkIn, checkOut) в
// возрастающем порядке: ночь даты выезда не тарифицируется. Total - точная
// сумма всех ночей, Nights - их количество. Расчёт детерминирован и не имеет
// побочных эффектов.
func ComputeStayPrice(room *Room, rs *SeasonalRuleSet, checkIn, checkOut time.Time) (*StayPrice, error) {
	checkIn = DateOnly(checkIn)
	checkOut = DateOnly(checkOut)

	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	nights := NightsBetween(checkIn, checkOut)
	breakdown := make([]PriceBreakdownEntry, 0, nights)
	total := decimal.Zero

	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		price, tier := ResolveNightlyPrice(room, rs, d)
		breakdown = append(breakdown, PriceBreakdownEntry{
			Date:    d,
			Weekday: d.Weekday(),
			Price:   price,
			Tier:    tier,
		})
		total = total.Add(price)
	}

	return &StayPrice{
		Breakdown: breakdown,
		Total:     total,
		Nights:    len(breakdown),
	}, nil
}
