package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
	roomRepo "github.com/m04kA/TP-StayService/internal/infra/storage/room"
	rulesetRepo "github.com/m04kA/TP-StayService/internal/infra/storage/ruleset"
	businessClient "github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/internal/service/pricing/models"
)

// Service сервис управления сезонной тарификацией комнат
type Service struct {
	ruleSetRepo    RuleSetRepository
	roomRepo       RoomRepository
	businessClient BusinessServiceClient
	txManager      TransactionManager
	cache          CacheInvalidator
	logger         Logger
}

// NewService создает новый экземпляр сервиса тарификации
func NewService(
	ruleSetRepo RuleSetRepository,
	roomRepo RoomRepository,
	businessClient BusinessServiceClient,
	txManager TransactionManager,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		ruleSetRepo:    ruleSetRepo,
		roomRepo:       roomRepo,
		businessClient: businessClient,
		txManager:      txManager,
		cache:          cache,
		logger:         logger,
	}
}

// GetRoomRuleSet получает тарификацию комнаты
// Отсутствие активной конфигурации - валидное состояние: комната
// тарифицируется по базовой цене, RuleSet в ответе равен nil
func (s *Service) GetRoomRuleSet(ctx context.Context, roomID int64) (*models.RoomPricingResponse, error) {
	s.logger.Info("GetRoomRuleSet: fetching pricing for room=%d", roomID)

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoomRuleSet: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoomRuleSet: repository error for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: GetRoomRuleSet - repository error: %v", ErrInternal, err)
	}

	resp := &models.RoomPricingResponse{
		RoomID:        room.ID,
		BusinessID:    room.BusinessID,
		RoomBasePrice: room.BasePrice,
	}

	rs, err := s.ruleSetRepo.GetActiveByRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, rulesetRepo.ErrRuleSetNotFound) {
			s.logger.Info("GetRoomRuleSet: room id=%d has no active rule set", roomID)
			return resp, nil
		}
		s.logger.Error("GetRoomRuleSet: repository error for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: GetRoomRuleSet - repository error: %v", ErrInternal, err)
	}

	resp.RuleSet = models.FromDomainRuleSet(rs)
	s.logger.Info("GetRoomRuleSet: successfully fetched pricing for room=%d, ruleset=%d", roomID, rs.ID)
	return resp, nil
}

// UpsertRoomRuleSet обновляет сезонную конфигурацию комнаты
// Доступно только менеджерам бизнеса. Отсутствующие поля запроса не меняют
// текущую конфигурацию: слияние с активной строкой и замена выполняются в
// одной SERIALIZABLE-транзакции, чтобы параллельные обновления не теряли
// чужие поля. IsActive=false деактивирует конфигурацию целиком.
func (s *Service) UpsertRoomRuleSet(ctx context.Context, req *models.UpsertRuleSetRequest) (*models.RoomPricingResponse, error) {
	s.logger.Info("UpsertRoomRuleSet: updating pricing for room=%d by user=%d", req.RoomID, req.UserID)

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("UpsertRoomRuleSet: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("UpsertRoomRuleSet: repository error for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: UpsertRoomRuleSet - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, room.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Деактивация конфигурации - отдельная короткая ветка
	if req.IsActive != nil && !*req.IsActive {
		return s.deactivate(ctx, room)
	}

	var result *domain.SeasonalRuleSet

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем текущую конфигурацию внутри транзакции - базу для слияния
		current, err := s.ruleSetRepo.GetActiveByRoom(txCtx, room.ID)
		if err != nil && !errors.Is(err, rulesetRepo.ErrRuleSetNotFound) {
			return fmt.Errorf("get active rule set: %w", err)
		}

		merged, err := s.merge(room, current, req)
		if err != nil {
			return err
		}

		result, err = s.ruleSetRepo.Upsert(txCtx, merged)
		if err != nil {
			return fmt.Errorf("upsert rule set: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidMonth) || errors.Is(err, models.ErrInvalidWeekday) || errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("UpsertRoomRuleSet: invalid input for room=%d: %v", req.RoomID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("UpsertRoomRuleSet: transaction failed for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: UpsertRoomRuleSet - transaction failed: %v", ErrInternal, err)
	}

	// Смена тарифов меняет котировки - сбрасываем кеш доступности
	s.invalidateAvailability(ctx, room.BusinessID)

	s.logger.Info("UpsertRoomRuleSet: successfully updated pricing for room=%d, ruleset=%d", room.ID, result.ID)
	return &models.RoomPricingResponse{
		RoomID:        room.ID,
		BusinessID:    room.BusinessID,
		RoomBasePrice: room.BasePrice,
		RuleSet:       models.FromDomainRuleSet(result),
	}, nil
}

// deactivate выключает активную конфигурацию комнаты
func (s *Service) deactivate(ctx context.Context, room *domain.Room) (*models.RoomPricingResponse, error) {
	if err := s.ruleSetRepo.Deactivate(ctx, room.ID); err != nil {
		if errors.Is(err, rulesetRepo.ErrRuleSetNotFound) {
			s.logger.Warn("UpsertRoomRuleSet: room id=%d has no active rule set to deactivate", room.ID)
			return nil, ErrRuleSetNotFound
		}
		s.logger.Error("UpsertRoomRuleSet: deactivate failed for room=%d: %v", room.ID, err)
		return nil, fmt.Errorf("%w: UpsertRoomRuleSet - deactivate failed: %v", ErrInternal, err)
	}

	s.invalidateAvailability(ctx, room.BusinessID)

	s.logger.Info("UpsertRoomRuleSet: deactivated rule set for room=%d", room.ID)
	return &models.RoomPricingResponse{
		RoomID:        room.ID,
		BusinessID:    room.BusinessID,
		RoomBasePrice: room.BasePrice,
	}, nil
}

// merge строит новую конфигурацию: текущая активная строка (или базовая цена
// комнаты, если конфигурации ещё нет) плюс заданные поля запроса
func (s *Service) merge(room *domain.Room, current *domain.SeasonalRuleSet, req *models.UpsertRuleSetRequest) (*domain.SeasonalRuleSet, error) {
	merged := &domain.SeasonalRuleSet{
		RoomID:     room.ID,
		BusinessID: room.BusinessID,
		BasePrice:  room.BasePrice,
	}
	if current != nil {
		merged.BasePrice = current.BasePrice
		merged.WeekendPrice = current.WeekendPrice
		merged.WeekendDays = current.WeekendDays
		merged.PeakPrice = current.PeakPrice
		merged.PeakMonths = current.PeakMonths
		merged.HighPrice = current.HighPrice
		merged.HighMonths = current.HighMonths
		merged.LowPrice = current.LowPrice
		merged.LowMonths = current.LowMonths
	}

	if req.BasePrice != nil {
		merged.BasePrice = *req.BasePrice
	}
	if req.WeekendPrice != nil {
		merged.WeekendPrice = req.WeekendPrice
	}
	if req.WeekendDays != nil {
		days, err := models.ToWeekdaySet(*req.WeekendDays)
		if err != nil {
			return nil, err
		}
		merged.WeekendDays = days
	}
	if req.PeakPrice != nil {
		merged.PeakPrice = req.PeakPrice
	}
	if req.PeakMonths != nil {
		m, err := models.ToMonthSet(*req.PeakMonths)
		if err != nil {
			return nil, err
		}
		merged.PeakMonths = m
	}
	if req.HighPrice != nil {
		merged.HighPrice = req.HighPrice
	}
	if req.HighMonths != nil {
		m, err := models.ToMonthSet(*req.HighMonths)
		if err != nil {
			return nil, err
		}
		merged.HighMonths = m
	}
	if req.LowPrice != nil {
		merged.LowPrice = req.LowPrice
	}
	if req.LowMonths != nil {
		m, err := models.ToMonthSet(*req.LowMonths)
		if err != nil {
			return nil, err
		}
		merged.LowMonths = m
	}

	if err := validatePrices(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// validatePrices проверяет, что все заданные цены строго положительны
func validatePrices(rs *domain.SeasonalRuleSet) error {
	if !rs.BasePrice.IsPositive() {
		return fmt.Errorf("%w: base price must be positive", ErrInvalidInput)
	}
	for name, price := range map[string]*decimal.Decimal{
		"weekend": rs.WeekendPrice,
		"peak":    rs.PeakPrice,
		"high":    rs.HighPrice,
		"low":     rs.LowPrice,
	} {
		if price != nil && !price.IsPositive() {
			return fmt.Errorf("%w: %s price must be positive", ErrInvalidInput, name)
		}
	}
	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	if !business.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}

// invalidateAvailability сбрасывает кеш доступности бизнеса
// Ошибка кеша не блокирует основную операцию
func (s *Service) invalidateAvailability(ctx context.Context, businessID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBusiness(ctx, businessID); err != nil {
		s.logger.Warn("invalidateAvailability: failed to invalidate cache for business=%d: %v", businessID, err)
	}
}
