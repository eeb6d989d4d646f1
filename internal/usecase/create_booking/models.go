package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID   int64     // ID пользователя
	RoomID   int64     // ID комнаты
	CheckIn  time.Time // Дата заезда
	CheckOut time.Time // Дата выезда (ночь выезда не оплачивается)
	Notes    *string   // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64 // ID созданного бронирования
	UserID     int64 // ID пользователя
	BusinessID int64 // ID бизнеса
	RoomID     int64 // ID комнаты

	CheckIn  time.Time // Дата заезда
	CheckOut time.Time // Дата выезда
	Nights   int       // Количество ночей
	Status   string    // Статус бронирования

	// Итог расчёта на момент создания - авторитетная сумма к оплате
	TotalPrice decimal.Decimal

	// Денормализованные данные гостя
	GuestName  *string // Имя гостя
	GuestPhone *string // Телефон гостя
	Notes      *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
