package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
)

var (
	// ErrInvalidMonth возвращается при некорректном номере месяца
	ErrInvalidMonth = errors.New("invalid month number")

	// ErrInvalidWeekday возвращается при некорректном названии дня недели
	ErrInvalidWeekday = errors.New("invalid weekday name")
)

// Request модели

// UpsertRuleSetRequest запрос на обновление сезонной конфигурации комнаты
// Отсутствующее поле (nil) означает "оставить как в текущей конфигурации".
// IsActive=false деактивирует конфигурацию целиком.
type UpsertRuleSetRequest struct {
	UserID int64 `json:"userId"`
	RoomID int64 `json:"roomId"`

	BasePrice *decimal.Decimal `json:"basePrice,omitempty"`

	WeekendPrice *decimal.Decimal `json:"weekendPrice,omitempty"`
	WeekendDays  *[]string        `json:"weekendDays,omitempty"` // ["Saturday", "Sunday"]

	PeakPrice  *decimal.Decimal `json:"peakPrice,omitempty"`
	PeakMonths *[]int           `json:"peakMonths,omitempty"` // номера месяцев 1-12

	HighPrice  *decimal.Decimal `json:"highPrice,omitempty"`
	HighMonths *[]int           `json:"highMonths,omitempty"`

	LowPrice  *decimal.Decimal `json:"lowPrice,omitempty"`
	LowMonths *[]int           `json:"lowMonths,omitempty"`

	IsActive *bool `json:"isActive,omitempty"`
}

// Response модели

// RuleSetResponse сезонная конфигурация в ответе API
type RuleSetResponse struct {
	ID         int64 `json:"id"`
	RoomID     int64 `json:"roomId"`
	BusinessID int64 `json:"businessId"`

	BasePrice decimal.Decimal `json:"basePrice"`

	WeekendPrice *decimal.Decimal `json:"weekendPrice,omitempty"`
	WeekendDays  []string         `json:"weekendDays,omitempty"`

	PeakPrice  *decimal.Decimal `json:"peakPrice,omitempty"`
	PeakMonths []int            `json:"peakMonths,omitempty"`

	HighPrice  *decimal.Decimal `json:"highPrice,omitempty"`
	HighMonths []int            `json:"highMonths,omitempty"`

	LowPrice  *decimal.Decimal `json:"lowPrice,omitempty"`
	LowMonths []int            `json:"lowMonths,omitempty"`

	IsActive bool `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomPricingResponse ответ с тарификацией комнаты
// RuleSet == nil - валидное состояние: комната тарифицируется по базовой цене
type RoomPricingResponse struct {
	RoomID        int64            `json:"roomId"`
	BusinessID    int64            `json:"businessId"`
	RoomBasePrice decimal.Decimal  `json:"roomBasePrice"`
	RuleSet       *RuleSetResponse `json:"ruleSet,omitempty"`
}

// Методы конвертации

// FromDomainRuleSet конвертирует domain модель в DTO
func FromDomainRuleSet(rs *domain.SeasonalRuleSet) *RuleSetResponse {
	if rs == nil {
		return nil
	}

	return &RuleSetResponse{
		ID:           rs.ID,
		RoomID:       rs.RoomID,
		BusinessID:   rs.BusinessID,
		BasePrice:    rs.BasePrice,
		WeekendPrice: rs.WeekendPrice,
		WeekendDays:  WeekdayNames(rs.WeekendDays),
		PeakPrice:    rs.PeakPrice,
		PeakMonths:   MonthNumbers(rs.PeakMonths),
		HighPrice:    rs.HighPrice,
		HighMonths:   MonthNumbers(rs.HighMonths),
		LowPrice:     rs.LowPrice,
		LowMonths:    MonthNumbers(rs.LowMonths),
		IsActive:     rs.IsActive,
		CreatedAt:    rs.CreatedAt,
		UpdatedAt:    rs.UpdatedAt,
	}
}

// MonthNumbers возвращает месяцы множества как номера 1-12
func MonthNumbers(s domain.MonthSet) []int {
	if len(s) == 0 {
		return nil
	}
	months := s.Months()
	nums := make([]int, len(months))
	for i, m := range months {
		nums[i] = int(m)
	}
	return nums
}

// WeekdayNames возвращает дни множества как английские названия
func WeekdayNames(s domain.WeekdaySet) []string {
	if len(s) == 0 {
		return nil
	}
	days := s.Weekdays()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}

// ToMonthSet конвертирует номера месяцев в типизированное множество
func ToMonthSet(nums []int) (domain.MonthSet, error) {
	set := make(domain.MonthSet, len(nums))
	for _, n := range nums {
		if n < 1 || n > 12 {
			return nil, ErrInvalidMonth
		}
		set[time.Month(n)] = struct{}{}
	}
	return set, nil
}

// ToWeekdaySet конвертирует названия дней недели в типизированное множество
func ToWeekdaySet(names []string) (domain.WeekdaySet, error) {
	set := make(domain.WeekdaySet, len(names))
	for _, name := range names {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, ErrInvalidWeekday
		}
		set[day] = struct{}{}
	}
	return set, nil
}
