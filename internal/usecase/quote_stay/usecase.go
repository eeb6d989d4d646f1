package quote_stay

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TP-StayService/internal/domain"
	roomRepo "github.com/m04kA/TP-StayService/internal/infra/storage/room"
	rulesetRepo "github.com/m04kA/TP-StayService/internal/infra/storage/ruleset"
)

// UseCase use case расчёта стоимости проживания с детализацией по ночам
type UseCase struct {
	roomRepo    RoomRepository
	ruleSetRepo RuleSetRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	ruleSetRepo RuleSetRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:    roomRepo,
		ruleSetRepo: ruleSetRepo,
		logger:      logger,
	}
}

// Execute выполняет use case расчёта стоимости
// Расчёт детерминирован: одинаковый запрос при неизменной конфигурации
// даёт одинаковый результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteStay: room=%d, checkIn=%s, checkOut=%s",
		req.RoomID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteStay: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("QuoteStay: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("QuoteStay: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Получаем активную конфигурацию; её отсутствие - валидное состояние,
	// комната тарифицируется по базовой цене
	ruleSet, err := uc.ruleSetRepo.GetActiveByRoom(ctx, req.RoomID)
	if err != nil {
		if !errors.Is(err, rulesetRepo.ErrRuleSetNotFound) {
			uc.logger.Error("QuoteStay: failed to get rule set for room id=%d: %v", req.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get rule set: %v", ErrInternal, err)
		}
		ruleSet = nil
	}

	// 4. Считаем стоимость по ночам
	stay, err := domain.ComputeStayPrice(room, ruleSet, req.CheckIn, req.CheckOut)
	if err != nil {
		// Интервал уже провалидирован, сюда попадать не должны
		uc.logger.Error("QuoteStay: failed to compute stay price for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to compute stay price: %v", ErrInternal, err)
	}

	breakdown := make([]NightPrice, len(stay.Breakdown))
	for i, entry := range stay.Breakdown {
		breakdown[i] = NightPrice{
			Date:    entry.Date.Format(domain.DateFormat),
			Weekday: entry.Weekday.String(),
			Price:   entry.Price,
			Tier:    string(entry.Tier),
		}
	}

	uc.logger.Info("QuoteStay: room=%d, %d nights, total=%s",
		req.RoomID, stay.Nights, stay.Total.String())

	return &Response{
		RoomID:    room.ID,
		CheckIn:   domain.DateOnly(req.CheckIn),
		CheckOut:  domain.DateOnly(req.CheckOut),
		Nights:    stay.Nights,
		Total:     stay.Total,
		Breakdown: breakdown,
	}, nil
}
