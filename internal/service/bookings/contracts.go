package bookings

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
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
