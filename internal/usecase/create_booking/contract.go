package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlappingForRooms(ctx context.Context, roomIDs []int64, start, end time.Time) ([]*domain.Booking, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// RuleSetRepository интерфейс репозитория сезонных конфигураций
type RuleSetRepository interface {
	GetActiveByRoom(ctx context.Context, roomID int64) (*domain.SeasonalRuleSet, error)
}

// BlockedRangeRepository интерфейс репозитория заблокированных диапазонов
type BlockedRangeRepository interface {
	GetOverlappingForRooms(ctx context.Context, roomIDs []int64, start, end time.Time) ([]*domain.BlockedDateRange, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetGuestProfileWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Guest, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator интерфейс для сброса кеша доступности после мутаций
type CacheInvalidator interface {
	InvalidateBusiness(ctx context.Context, businessID int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
