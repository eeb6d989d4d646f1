package pricing

import (
	"context"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
)

// RuleSetRepository интерфейс репозитория сезонных конфигураций
type RuleSetRepository interface {
	GetActiveByRoom(ctx context.Context, roomID int64) (*domain.SeasonalRuleSet, error)
	Upsert(ctx context.Context, rs *domain.SeasonalRuleSet) (*domain.SeasonalRuleSet, error)
	Deactivate(ctx context.Context, roomID int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
