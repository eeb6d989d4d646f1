package get_available_rooms

import (
	"context"
	"time"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/infra/cache"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Room, error)
}

// RuleSetRepository интерфейс репозитория сезонных конфигураций
type RuleSetRepository interface {
	GetActiveByRooms(ctx context.Context, roomIDs []int64) (map[int64]*domain.SeasonalRuleSet, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlappingForRooms(ctx context.Context, roomIDs []int64, start, end time.Time) ([]*domain.Booking, error)
}

// BlockedRangeRepository интерфейс репозитория заблокированных диапазонов
type BlockedRangeRepository interface {
	GetOverlappingForRooms(ctx context.Context, roomIDs []int64, start, end time.Time) ([]*domain.BlockedDateRange, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// AvailabilityCache интерфейс кеша результатов подбора
type AvailabilityCache interface {
	Get(ctx context.Context, businessID int64, checkIn, checkOut time.Time) ([]cache.CachedRoomOffer, error)
	Set(ctx context.Context, businessID int64, checkIn, checkOut time.Time, offers []cache.CachedRoomOffer) error
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
