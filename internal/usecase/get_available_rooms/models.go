package get_available_rooms

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на подбор свободных комнат
type Request struct {
	BusinessID int64     // ID бизнеса
	CheckIn    time.Time // Дата заезда
	CheckOut   time.Time // Дата выезда (ночь выезда не оплачивается)
}

// RoomOffer свободная комната с итоговой стоимостью проживания
type RoomOffer struct {
	RoomID     int64           // ID комнаты
	Number     string          // Номер комнаты
	Name       string          // Название комнаты
	TotalPrice decimal.Decimal // Стоимость всего проживания
	Nights     int             // Количество ночей
}

// Response модель ответа со свободными комнатами
// Комнаты отсортированы по ID по возрастанию
type Response struct {
	BusinessID int64       // ID бизнеса
	CheckIn    time.Time   // Дата заезда
	CheckOut   time.Time   // Дата выезда
	Nights     int         // Количество ночей
	Rooms      []RoomOffer // Свободные комнаты с ценами
}
