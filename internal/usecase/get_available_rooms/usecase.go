package get_available_rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/infra/cache"
	businessClient "github.com/m04kA/TP-StayService/internal/integrations/businessservice"
)

// UseCase use case подбора свободных комнат бизнеса на интервал дат
type UseCase struct {
	roomRepo       RoomRepository
	ruleSetRepo    RuleSetRepository
	bookingRepo    BookingRepository
	blockedRepo    BlockedRangeRepository
	businessClient BusinessServiceClient
	cache          AvailabilityCache
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	ruleSetRepo RuleSetRepository,
	bookingRepo BookingRepository,
	blockedRepo BlockedRangeRepository,
	businessClient BusinessServiceClient,
	availabilityCache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:       roomRepo,
		ruleSetRepo:    ruleSetRepo,
		bookingRepo:    bookingRepo,
		blockedRepo:    blockedRepo,
		businessClient: businessClient,
		cache:          availabilityCache,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case подбора свободных комнат
// Результат кешируется на короткий TTL и сбрасывается мутациями
// (бронирования, блокировки, смена тарифов)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableRooms: business=%d, checkIn=%s, checkOut=%s",
		req.BusinessID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("GetAvailableRooms: validation failed: %v", err)
		return nil, err
	}

	checkIn := domain.DateOnly(req.CheckIn)
	checkOut := domain.DateOnly(req.CheckOut)
	nights := domain.NightsBetween(checkIn, checkOut)

	// 2. Пробуем кеш
	if uc.cache != nil {
		offers, err := uc.cache.Get(ctx, req.BusinessID, checkIn, checkOut)
		if err == nil {
			uc.logger.Info("GetAvailableRooms: cache hit for business=%d, %d rooms", req.BusinessID, len(offers))
			return buildResponse(req.BusinessID, checkIn, checkOut, nights, offers), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Недоступный Redis не блокирует подбор
			uc.logger.Warn("GetAvailableRooms: cache get failed for business=%d: %v", req.BusinessID, err)
		}
	}

	// 3. Получаем бизнес
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableRooms: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableRooms: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("GetAvailableRooms: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessInactive
	}

	// 4. Получаем номерной фонд бизнеса
	rooms, err := uc.roomRepo.ListByBusiness(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to list rooms for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}
	if len(rooms) == 0 {
		uc.logger.Info("GetAvailableRooms: business=%d has no rooms", req.BusinessID)
		return buildResponse(req.BusinessID, checkIn, checkOut, nights, nil), nil
	}

	roomIDs := make([]int64, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	// 5. Снимок занятости: пересекающиеся бронирования и блокировки
	bookings, err := uc.bookingRepo.GetOverlappingForRooms(ctx, roomIDs, checkIn, checkOut)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to get bookings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockedRepo.GetOverlappingForRooms(ctx, roomIDs, checkIn, checkOut)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to get blocked ranges for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
	}

	// 6. Фильтруем свободные комнаты
	available := domain.FindAvailableRooms(rooms, checkIn, checkOut, bookings, blocks)
	if len(available) == 0 {
		uc.logger.Info("GetAvailableRooms: no available rooms for business=%d", req.BusinessID)
		uc.storeInCache(ctx, req.BusinessID, checkIn, checkOut, nil)
		return buildResponse(req.BusinessID, checkIn, checkOut, nights, nil), nil
	}

	// 7. Котируем каждую свободную комнату по её активной конфигурации
	availableIDs := make([]int64, len(available))
	for i, room := range available {
		availableIDs[i] = room.ID
	}

	ruleSets, err := uc.ruleSetRepo.GetActiveByRooms(ctx, availableIDs)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to get rule sets for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get rule sets: %v", ErrInternal, err)
	}

	offers := make([]cache.CachedRoomOffer, 0, len(available))
	for _, room := range available {
		stay, err := domain.ComputeStayPrice(room, ruleSets[room.ID], checkIn, checkOut)
		if err != nil {
			// Интервал уже провалидирован, сюда попадать не должны
			uc.logger.Error("GetAvailableRooms: failed to price room id=%d: %v", room.ID, err)
			return nil, fmt.Errorf("%w: failed to price room: %v", ErrInternal, err)
		}
		offers = append(offers, cache.CachedRoomOffer{
			RoomID:     room.ID,
			Number:     room.Number,
			Name:       room.Name,
			TotalPrice: stay.Total,
			Nights:     stay.Nights,
		})
	}

	// 8. Кешируем результат
	uc.storeInCache(ctx, req.BusinessID, checkIn, checkOut, offers)

	uc.logger.Info("GetAvailableRooms: %d of %d rooms available for business=%d",
		len(offers), len(rooms), req.BusinessID)

	return buildResponse(req.BusinessID, checkIn, checkOut, nights, offers), nil
}

// storeInCache кеширует результат подбора, ошибка кеша не блокирует ответ
func (uc *UseCase) storeInCache(ctx context.Context, businessID int64, checkIn, checkOut time.Time, offers []cache.CachedRoomOffer) {
	if uc.cache == nil {
		return
	}
	if offers == nil {
		offers = []cache.CachedRoomOffer{}
	}
	if err := uc.cache.Set(ctx, businessID, checkIn, checkOut, offers); err != nil {
		uc.logger.Warn("GetAvailableRooms: cache set failed for business=%d: %v", businessID, err)
	}
}

// buildResponse собирает ответ из закешированных либо свежих предложений
func buildResponse(businessID int64, checkIn, checkOut time.Time, nights int, offers []cache.CachedRoomOffer) *Response {
	rooms := make([]RoomOffer, len(offers))
	for i, offer := range offers {
		rooms[i] = RoomOffer{
			RoomID:     offer.RoomID,
			Number:     offer.Number,
			Name:       offer.Name,
			TotalPrice: offer.TotalPrice,
			Nights:     offer.Nights,
		}
	}

	return &Response{
		BusinessID: businessID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     nights,
		Rooms:      rooms,
	}
}
