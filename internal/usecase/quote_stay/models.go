package quote_stay

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на расчёт стоимости проживания
type Request struct {
	RoomID   int64     // ID комнаты
	CheckIn  time.Time // Дата заезда
	CheckOut time.Time // Дата выезда (ночь выезда не оплачивается)
}

// NightPrice цена одной ночи с указанием сработавшего правила
type NightPrice struct {
	Date    string          // "2025-12-06"
	Weekday string          // "Saturday"
	Price   decimal.Decimal // Цена ночи
	Tier    string          // default | base | peak_season | high_season | low_season | weekend
}

// Response модель ответа с полной детализацией по ночам
// Total - авторитетная сумма к оплате, создание бронирования
// использует ровно этот расчёт
type Response struct {
	RoomID    int64           // ID комнаты
	CheckIn   time.Time       // Дата заезда
	CheckOut  time.Time       // Дата выезда
	Nights    int             // Количество ночей
	Total     decimal.Decimal // Итоговая стоимость
	Breakdown []NightPrice    // Детализация по ночам в возрастающем порядке дат
}
