package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TP-StayService/internal/domain"
	bookingRepo "github.com/m04kA/TP-StayService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/TP-StayService/internal/infra/storage/room"
	rulesetRepo "github.com/m04kA/TP-StayService/internal/infra/storage/ruleset"
	businessClient "github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	roomRepo       RoomRepository
	ruleSetRepo    RuleSetRepository
	blockedRepo    BlockedRangeRepository
	businessClient BusinessServiceClient
	userClient     UserServiceClient
	txManager      TransactionManager
	cache          CacheInvalidator
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	ruleSetRepo RuleSetRepository,
	blockedRepo BlockedRangeRepository,
	businessClient BusinessServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		ruleSetRepo:    ruleSetRepo,
		blockedRepo:    blockedRepo,
		businessClient: businessClient,
		userClient:     userClient,
		txManager:      txManager,
		cache:          cache,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности, расчёт стоимости и вставка выполняются в одной
// сериализуемой транзакции: проверка-потом-запись без неё дала бы гонку
// двойного бронирования. EXCLUDE-ограничение в БД страхует тот же инвариант
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, room=%d, checkIn=%s, checkOut=%s",
		req.UserID, req.RoomID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	checkIn := domain.DateOnly(req.CheckIn)
	checkOut := domain.DateOnly(req.CheckOut)

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Проверяем бизнес
	business, err := uc.businessClient.GetBusiness(ctx, room.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", room.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", room.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("CreateBooking: business id=%d is inactive", room.BusinessID)
		return nil, ErrBusinessInactive
	}

	// 4. Профиль гостя для денормализации контактов.
	// UserService необязателен: при его недоступности или отсутствии профиля
	// бронирование создается без контактов гостя
	var guestName, guestPhone *string
	guest, err := uc.userClient.GetGuestProfileWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("CreateBooking: proceeding without guest profile for user=%d: %v", req.UserID, err)
	} else {
		guestName = ptr.Ptr(guest.FullName())
		if guest.Phone != "" {
			guestPhone = ptr.Ptr(guest.Phone)
		}
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		roomIDs := []int64{room.ID}

		// 5.1. Перечитываем занятость комнаты с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetOverlappingForRooms(txCtx, roomIDs, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.blockedRepo.GetOverlappingForRooms(txCtx, roomIDs, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked ranges: %v", err)
			return fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
		}

		// 5.2. Проверяем доступность комнаты на запрошенный интервал
		available := domain.FindAvailableRooms([]*domain.Room{room}, checkIn, checkOut, bookings, blocks)
		if len(available) == 0 {
			uc.logger.Warn("CreateBooking: room id=%d is not available for %s - %s",
				room.ID, checkIn.Format(domain.DateFormat), checkOut.Format(domain.DateFormat))
			return ErrRoomNotAvailable
		}

		// 5.3. Пересчитываем стоимость внутри транзакции, чтобы сохранённый
		// итог не разошёлся с конфигурацией на момент записи
		ruleSet, err := uc.ruleSetRepo.GetActiveByRoom(txCtx, room.ID)
		if err != nil {
			if !errors.Is(err, rulesetRepo.ErrRuleSetNotFound) {
				uc.logger.Error("CreateBooking: failed to get rule set for room id=%d: %v", room.ID, err)
				return fmt.Errorf("%w: failed to get rule set: %v", ErrInternal, err)
			}
			ruleSet = nil
		}

		stay, err := domain.ComputeStayPrice(room, ruleSet, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute stay price: %v", err)
			return fmt.Errorf("%w: failed to compute stay price: %v", ErrInternal, err)
		}

		// 5.4. Создаем бронирование с сохранённым итогом расчёта
		booking := &domain.Booking{
			UserID:       req.UserID,
			BusinessID:   room.BusinessID,
			RoomID:       room.ID,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			Status:       domain.StatusPending,
			TotalPrice:   stay.Total,
			Nights:       stay.Nights,
			GuestName:    guestName,
			GuestPhone:   guestPhone,
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingConflict) {
				uc.logger.Warn("CreateBooking: conflicting booking for room id=%d", room.ID)
				return ErrBookingConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 6. Сбрасываем кеш доступности после коммита
	if uc.cache != nil {
		if err := uc.cache.InvalidateBusiness(ctx, room.BusinessID); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate cache for business=%d: %v", room.BusinessID, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s",
		result.ID, result.TotalPrice.String())

	// Конвертируем в response
	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		BusinessID: result.BusinessID,
		RoomID:     result.RoomID,
		CheckIn:    result.CheckInDate,
		CheckOut:   result.CheckOutDate,
		Nights:     result.Nights,
		Status:     string(result.Status),
		TotalPrice: result.TotalPrice,
		GuestName:  result.GuestName,
		GuestPhone: result.GuestPhone,
		Notes:      result.Notes,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
