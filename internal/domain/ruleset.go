package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Tier именованное правило, определившее цену ночи
type Tier string

const (
	TierDefault    Tier = "default"     // цена комнаты, активной конфигурации нет
	TierBase       Tier = "base"        // базовая цена конфигурации
	TierPeakSeason Tier = "peak_season" // пиковый сезон
	TierHighSeason Tier = "high_season" // высокий сезон
	TierLowSeason  Tier = "low_season"  // низкий сезон
	TierWeekend    Tier = "weekend"     // надбавка выходного дня
)

// SeasonalRuleSet сезонная конфигурация цен комнаты
// На комнату авторитетна не более одной активной конфигурации - инвариант
// обеспечивает хранилище (частичный уникальный индекс), резолвер его не
// перепроверяет
type SeasonalRuleSet struct {
	ID         int64
	RoomID     int64
	BusinessID int64

	BasePrice decimal.Decimal

	WeekendPrice *decimal.Decimal
	WeekendDays  WeekdaySet

	PeakPrice  *decimal.Decimal
	PeakMonths MonthSet

	HighPrice  *decimal.Decimal
	HighMonths MonthSet

	LowPrice  *decimal.Decimal
	LowMonths MonthSet

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthSet типизированное множество месяцев с O(1) проверкой принадлежности
// В БД хранится как jsonb-массив номеров месяцев (1-12)
type MonthSet map[time.Month]struct{}

// NewMonthSet создает множество из перечисленных месяцев
func NewMonthSet(months ...time.Month) MonthSet {
	s := make(MonthSet, len(months))
	for _, m := range months {
		s[m] = struct{}{}
	}
	return s
}

// Contains проверяет принадлежность месяца множеству
func (s MonthSet) Contains(m time.Month) bool {
	_, ok := s[m]
	return ok
}

// Months возвращает месяцы множества в возрастающем порядке
func (s MonthSet) Months() []time.Month {
	months := make([]time.Month, 0, len(s))
	for m := range s {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

// MarshalJSON сериализует множество как отсортированный массив номеров месяцев
func (s MonthSet) MarshalJSON() ([]byte, error) {
	months := s.Months()
	nums := make([]int, len(months))
	for i, m := range months {
		nums[i] = int(m)
	}
	return json.Marshal(nums)
}

// UnmarshalJSON читает множество из массива номеров месяцев
func (s *MonthSet) UnmarshalJSON(data []byte) error {
	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	set := make(MonthSet, len(nums))
	for _, n := range nums {
		if n < 1 || n > 12 {
			return fmt.Errorf("domain: invalid month number %d", n)
		}
		set[time.Month(n)] = struct{}{}
	}
	*s = set
	return nil
}

// Value сериализует множество для записи в jsonb-колонку
func (s MonthSet) Value() (driver.Value, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Scan читает множество из jsonb-колонки
func (s *MonthSet) Scan(src interface{}) error {
	if src == nil {
		*s = MonthSet{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("domain: cannot scan %T into MonthSet", src)
	}
	return s.UnmarshalJSON(data)
}

// WeekdaySet типизированное множество дней недели с O(1) проверкой
// В БД и API представлено массивом английских названий дней ("Saturday")
type WeekdaySet map[time.Weekday]struct{}

// NewWeekdaySet создает множество из перечисленных дней недели
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	s := make(WeekdaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// Contains проверяет принадлежность дня недели множеству
func (s WeekdaySet) Contains(d time.Weekday) bool {
	_, ok := s[d]
	return ok
}

// Weekdays возвращает дни множества в порядке Sunday..Saturday
func (s WeekdaySet) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// MarshalJSON сериализует множество как массив названий дней недели
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := s.Weekdays()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return json.Marshal(names)
}

// UnmarshalJSON читает множество из массива названий дней недели
func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	set := make(WeekdaySet, len(names))
	for _, name := range names {
		day, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		set[day] = struct{}{}
	}
	*s = set
	return nil
}

// Value сериализует множество для записи в jsonb-колонку
func (s WeekdaySet) Value() (driver.Value, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Scan читает множество из jsonb-колонки
func (s *WeekdaySet) Scan(src interface{}) error {
	if src == nil {
		*s = WeekdaySet{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("domain: cannot scan %T into WeekdaySet", src)
	}
	return s.UnmarshalJSON(data)
}

// ParseWeekday разбирает английское название дня недели
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("domain: unknown weekday %q", name)
}
