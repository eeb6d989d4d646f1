package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testRoom() *Room {
	return &Room{ID: 1, BusinessID: 10, Number: "101", BasePrice: dec("1000.00")}
}

func TestResolveNightlyPrice_NoRuleSet(t *testing.T) {
	price, tier := ResolveNightlyPrice(testRoom(), nil, date(2025, time.June, 15))

	assert.True(t, price.Equal(dec("1000.00")))
	assert.Equal(t, TierDefault, tier)
}

func TestResolveNightlyPrice_InactiveRuleSet(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:  dec("800.00"),
		PeakPrice:  decPtr("2000.00"),
		PeakMonths: NewMonthSet(time.June),
		IsActive:   false,
	}

	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.June, 15))

	assert.True(t, price.Equal(dec("1000.00")))
	assert.Equal(t, TierDefault, tier)
}

func TestResolveNightlyPrice_BaseWhenNoSeasonMatches(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:  dec("800.00"),
		PeakPrice:  decPtr("2000.00"),
		PeakMonths: NewMonthSet(time.December),
		IsActive:   true,
	}

	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.June, 16))

	assert.True(t, price.Equal(dec("800.00")))
	assert.Equal(t, TierBase, tier)
}

func TestResolveNightlyPrice_TierPriorityPeakOverHigh(t *testing.T) {
	// Патологическая конфигурация: июнь и в peak, и в high - побеждает peak
	rs := &SeasonalRuleSet{
		BasePrice:  dec("800.00"),
		PeakPrice:  decPtr("2000.00"),
		PeakMonths: NewMonthSet(time.June),
		HighPrice:  decPtr("1500.00"),
		HighMonths: NewMonthSet(time.June),
		IsActive:   true,
	}

	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.June, 16))

	assert.True(t, price.Equal(dec("2000.00")))
	assert.Equal(t, TierPeakSeason, tier)
}

func TestResolveNightlyPrice_HighOverLow(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:  dec("800.00"),
		HighPrice:  decPtr("1500.00"),
		HighMonths: NewMonthSet(time.September),
		LowPrice:   decPtr("500.00"),
		LowMonths:  NewMonthSet(time.September),
		IsActive:   true,
	}

	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.September, 1))

	assert.True(t, price.Equal(dec("1500.00")))
	assert.Equal(t, TierHighSeason, tier)
}

func TestResolveNightlyPrice_SeasonWithoutPriceIsSkipped(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:  dec("800.00"),
		PeakMonths: NewMonthSet(time.June), // цена peak не задана
		LowPrice:   decPtr("500.00"),
		LowMonths:  NewMonthSet(time.June),
		IsActive:   true,
	}

	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.June, 16))

	assert.True(t, price.Equal(dec("500.00")))
	assert.Equal(t, TierLowSeason, tier)
}

func TestResolveNightlyPrice_WeekendOverride(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:    dec("800.00"),
		WeekendPrice: decPtr("1200.00"),
		WeekendDays:  NewWeekdaySet(time.Saturday, time.Sunday),
		IsActive:     true,
	}

	// 2025-06-14 - суббота
	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.June, 14))

	assert.True(t, price.Equal(dec("1200.00")))
	assert.Equal(t, TierWeekend, tier)
}

func TestResolveNightlyPrice_WeekendEqualPriceKeepsSeasonalTier(t *testing.T) {
	// Строгое неравенство: равная цена выходного не перебивает сезонную
	rs := &SeasonalRuleSet{
		BasePrice:    dec("800.00"),
		WeekendPrice: decPtr("800.00"),
		WeekendDays:  NewWeekdaySet(time.Saturday),
		IsActive:     true,
	}

	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.June, 14))

	assert.True(t, price.Equal(dec("800.00")))
	assert.Equal(t, TierBase, tier)
}

func TestResolveNightlyPrice_WeekendNeverDiscounts(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:    dec("800.00"),
		WeekendPrice: decPtr("1500.00"),
		WeekendDays:  NewWeekdaySet(time.Saturday),
		PeakPrice:    decPtr("2000.00"),
		PeakMonths:   NewMonthSet(time.December),
		IsActive:     true,
	}

	// 2025-12-06 - суббота в пиковый сезон: 1500 не больше 2000,
	// остаётся peak_season
	price, tier := ResolveNightlyPrice(testRoom(), rs, date(2025, time.December, 6))

	assert.True(t, price.Equal(dec("2000.00")))
	assert.Equal(t, TierPeakSeason, tier)
}

func TestResolveNightlyPrice_Deterministic(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:    dec("800.00"),
		WeekendPrice: decPtr("1300.00"),
		WeekendDays:  NewWeekdaySet(time.Friday, time.Saturday),
		HighPrice:    decPtr("1100.00"),
		HighMonths:   NewMonthSet(time.July, time.August),
		IsActive:     true,
	}
	d := date(2025, time.August, 1) // пятница в высокий сезон

	firstPrice, firstTier := ResolveNightlyPrice(testRoom(), rs, d)
	for i := 0; i < 10; i++ {
		price, tier := ResolveNightlyPrice(testRoom(), rs, d)
		assert.True(t, price.Equal(firstPrice))
		assert.Equal(t, firstTier, tier)
	}
}

func TestComputeStayPrice_InvalidRange(t *testing.T) {
	room := testRoom()

	_, err := ComputeStayPrice(room, nil, date(2025, time.January, 4), date(2025, time.January, 4))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ComputeStayPrice(room, nil, date(2025, time.January, 4), date(2025, time.January, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestComputeStayPrice_ExclusiveCheckout(t *testing.T) {
	stay, err := ComputeStayPrice(testRoom(), nil, date(2025, time.January, 1), date(2025, time.January, 4))
	require.NoError(t, err)

	// Ровно 3 ночи: 1, 2 и 3 января; 4 января в расчёте не появляется
	require.Equal(t, 3, stay.Nights)
	require.Len(t, stay.Breakdown, 3)
	assert.Equal(t, date(2025, time.January, 1), stay.Breakdown[0].Date)
	assert.Equal(t, date(2025, time.January, 2), stay.Breakdown[1].Date)
	assert.Equal(t, date(2025, time.January, 3), stay.Breakdown[2].Date)
	assert.True(t, stay.Total.Equal(dec("3000.00")))
}

func TestComputeStayPrice_SumConsistency(t *testing.T) {
	rs := &SeasonalRuleSet{
		BasePrice:    dec("900.00"),
		WeekendPrice: decPtr("1400.00"),
		WeekendDays:  NewWeekdaySet(time.Saturday, time.Sunday),
		PeakPrice:    decPtr("2000.00"),
		PeakMonths:   NewMonthSet(time.December, time.January),
		IsActive:     true,
	}

	stay, err := ComputeStayPrice(testRoom(), rs, date(2025, time.November, 28), date(2025, time.December, 5))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, entry := range stay.Breakdown {
		sum = sum.Add(entry.Price)
	}
	assert.True(t, stay.Total.Equal(sum))
	assert.Equal(t, len(stay.Breakdown), stay.Nights)
}

func TestComputeStayPrice_AscendingOrderAndTiers(t *testing.T) {
	// Спорный сценарий из постановки: база 1000, weekend=1500 {Saturday},
	// peak=2000 {декабрь}. 2025-12-06 - суббота: 1500 не больше 2000,
	// итог (2000, peak_season)
	rs := &SeasonalRuleSet{
		BasePrice:    dec("1000.00"),
		WeekendPrice: decPtr("1500.00"),
		WeekendDays:  NewWeekdaySet(time.Saturday),
		PeakPrice:    decPtr("2000.00"),
		PeakMonths:   NewMonthSet(time.December),
		IsActive:     true,
	}

	stay, err := ComputeStayPrice(testRoom(), rs, date(2025, time.December, 5), date(2025, time.December, 8))
	require.NoError(t, err)
	require.Equal(t, 3, stay.Nights)

	for i := 1; i < len(stay.Breakdown); i++ {
		assert.True(t, stay.Breakdown[i].Date.After(stay.Breakdown[i-1].Date))
	}

	// Все три ночи декабрьские - peak перекрывает и будний, и выходной день
	for _, entry := range stay.Breakdown {
		assert.Equal(t, TierPeakSeason, entry.Tier)
		assert.True(t, entry.Price.Equal(dec("2000.00")))
	}

	saturday := stay.Breakdown[1]
	assert.Equal(t, time.Saturday, saturday.Weekday)
}

func TestComputeStayPrice_TimeOfDayIgnored(t *testing.T) {
	checkIn := time.Date(2025, time.March, 1, 14, 30, 0, 0, time.UTC)
	checkOut := time.Date(2025, time.March, 3, 11, 0, 0, 0, time.UTC)

	stay, err := ComputeStayPrice(testRoom(), nil, checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 2, stay.Nights)
}
