package rooms

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Room, error)
	Update(ctx context.Context, id int64, name *string, basePrice *decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

// BlockedRangeRepository интерфейс репозитория заблокированных диапазонов
type BlockedRangeRepository interface {
	Create(ctx context.Context, block *domain.BlockedDateRange) (*domain.BlockedDateRange, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedDateRange, error)
	Delete(ctx context.Context, id int64) error
}

// BookingChecker интерфейс для проверки наличия бронирований комнаты
type BookingChecker interface {
	ExistsForRoom(ctx context.Context, roomID int64) (bool, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// CacheInvalidator интерфейс для сброса кеша доступности после мутаций
type CacheInvalidator interface {
	InvalidateBusiness(ctx context.Context, businessID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
