package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TP-StayService/internal/domain"
	blockedRepo "github.com/m04kA/TP-StayService/internal/infra/storage/blocked"
	roomRepo "github.com/m04kA/TP-StayService/internal/infra/storage/room"
	businessClient "github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
)

// Service сервис управления номерным фондом бизнеса
type Service struct {
	roomRepo       RoomRepository
	blockedRepo    BlockedRangeRepository
	bookingChecker BookingChecker
	businessClient BusinessServiceClient
	cache          CacheInvalidator
	logger         Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(
	roomRepo RoomRepository,
	blockedRepo BlockedRangeRepository,
	bookingChecker BookingChecker,
	businessClient BusinessServiceClient,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:       roomRepo,
		blockedRepo:    blockedRepo,
		bookingChecker: bookingChecker,
		businessClient: businessClient,
		cache:          cache,
		logger:         logger,
	}
}

// CreateRoom создает комнату бизнеса
// Доступно только менеджерам бизнеса
func (s *Service) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("CreateRoom: creating room number=%s for business=%d by user=%d",
		req.Number, req.BusinessID, req.UserID)

	if strings.TrimSpace(req.Number) == "" {
		s.logger.Warn("CreateRoom: empty room number for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: room number is required", ErrInvalidInput)
	}
	if !req.BasePrice.IsPositive() {
		s.logger.Warn("CreateRoom: non-positive base price for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: base price must be positive", ErrInvalidInput)
	}

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	room := &domain.Room{
		BusinessID: req.BusinessID,
		Number:     req.Number,
		Name:       req.Name,
		BasePrice:  req.BasePrice,
	}

	created, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		if errors.Is(err, roomRepo.ErrDuplicateNumber) {
			s.logger.Warn("CreateRoom: duplicate number=%s for business=%d", req.Number, req.BusinessID)
			return nil, ErrDuplicateNumber
		}
		s.logger.Error("CreateRoom: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: CreateRoom - repository error: %v", ErrInternal, err)
	}

	s.invalidateAvailability(ctx, req.BusinessID)

	s.logger.Info("CreateRoom: successfully created room id=%d for business=%d", created.ID, req.BusinessID)
	return models.FromDomainRoom(created), nil
}

// UpdateRoom обновляет название и/или базовую цену комнаты
// Доступно только менеджерам бизнеса, отсутствующие поля не меняются
func (s *Service) UpdateRoom(ctx context.Context, req *models.UpdateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("UpdateRoom: updating room id=%d by user=%d", req.RoomID, req.UserID)

	if req.Name == nil && req.BasePrice == nil {
		s.logger.Warn("UpdateRoom: empty update for room id=%d", req.RoomID)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.BasePrice != nil && !req.BasePrice.IsPositive() {
		s.logger.Warn("UpdateRoom: non-positive base price for room id=%d", req.RoomID)
		return nil, fmt.Errorf("%w: base price must be positive", ErrInvalidInput)
	}

	room, err := s.getRoom(ctx, req.RoomID, "UpdateRoom")
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, room.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	if err := s.roomRepo.Update(ctx, req.RoomID, req.Name, req.BasePrice); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("UpdateRoom: room id=%d not found during update", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("UpdateRoom: repository error for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: UpdateRoom - repository error: %v", ErrInternal, err)
	}

	// Смена базовой цены меняет котировки - сбрасываем кеш доступности
	if req.BasePrice != nil {
		s.invalidateAvailability(ctx, room.BusinessID)
	}

	updated, err := s.getRoom(ctx, req.RoomID, "UpdateRoom")
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateRoom: successfully updated room id=%d", req.RoomID)
	return models.FromDomainRoom(updated), nil
}

// DeleteRoom удаляет комнату
// Комната с бронированиями (в любом статусе) не удаляется - история
// бронирований сохраняется
func (s *Service) DeleteRoom(ctx context.Context, roomID int64, userID int64) error {
	s.logger.Info("DeleteRoom: deleting room id=%d by user=%d", roomID, userID)

	room, err := s.getRoom(ctx, roomID, "DeleteRoom")
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, room.BusinessID, userID); err != nil {
		return err
	}

	// Проверяем ссылки бронирований до удаления; FK в БД страхует гонку
	hasBookings, err := s.bookingChecker.ExistsForRoom(ctx, roomID)
	if err != nil {
		s.logger.Error("DeleteRoom: failed to check bookings for room id=%d: %v", roomID, err)
		return fmt.Errorf("%w: DeleteRoom - failed to check bookings: %v", ErrInternal, err)
	}
	if hasBookings {
		s.logger.Warn("DeleteRoom: room id=%d has bookings, refusing to delete", roomID)
		return ErrRoomHasBookings
	}

	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("DeleteRoom: room id=%d not found during delete", roomID)
			return ErrRoomNotFound
		}
		if errors.Is(err, roomRepo.ErrRoomHasBookings) {
			s.logger.Warn("DeleteRoom: room id=%d is referenced by bookings", roomID)
			return ErrRoomHasBookings
		}
		s.logger.Error("DeleteRoom: repository error for room id=%d: %v", roomID, err)
		return fmt.Errorf("%w: DeleteRoom - repository error: %v", ErrInternal, err)
	}

	s.invalidateAvailability(ctx, room.BusinessID)

	s.logger.Info("DeleteRoom: successfully deleted room id=%d", roomID)
	return nil
}

// ListRooms возвращает комнаты бизнеса, отсортированные по ID
func (s *Service) ListRooms(ctx context.Context, businessID int64) (*models.RoomListResponse, error) {
	s.logger.Info("ListRooms: fetching rooms for business=%d", businessID)

	rooms, err := s.roomRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListRooms: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRooms: successfully fetched %d rooms for business=%d", len(rooms), businessID)
	return models.FromDomainRoomList(rooms), nil
}

// BlockDates закрывает даты комнаты для бронирования (ремонт, нужды владельца)
// Интервал полуоткрытый: дата EndDate уже доступна для заезда
func (s *Service) BlockDates(ctx context.Context, req *models.BlockDatesRequest) (*models.BlockedRangeResponse, error) {
	s.logger.Info("BlockDates: blocking room id=%d from %s to %s by user=%d",
		req.RoomID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.UserID)

	if !req.StartDate.Before(req.EndDate) {
		s.logger.Warn("BlockDates: invalid date range for room id=%d", req.RoomID)
		return nil, fmt.Errorf("%w: start date must be before end date", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLength {
		s.logger.Warn("BlockDates: reason too long for room id=%d", req.RoomID)
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	room, err := s.getRoom(ctx, req.RoomID, "BlockDates")
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, room.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	block := &domain.BlockedDateRange{
		RoomID:     room.ID,
		BusinessID: room.BusinessID,
		StartDate:  domain.DateOnly(req.StartDate),
		EndDate:    domain.DateOnly(req.EndDate),
		Reason:     req.Reason,
	}

	created, err := s.blockedRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("BlockDates: repository error for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: BlockDates - repository error: %v", ErrInternal, err)
	}

	s.invalidateAvailability(ctx, room.BusinessID)

	s.logger.Info("BlockDates: successfully blocked room id=%d, block id=%d", req.RoomID, created.ID)
	return models.FromDomainBlockedRange(created), nil
}

// UnblockDates снимает блокировку дат
func (s *Service) UnblockDates(ctx context.Context, req *models.UnblockDatesRequest) error {
	s.logger.Info("UnblockDates: removing block id=%d by user=%d", req.BlockID, req.UserID)

	block, err := s.blockedRepo.GetByID(ctx, req.BlockID)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrBlockNotFound) {
			s.logger.Warn("UnblockDates: block id=%d not found", req.BlockID)
			return ErrBlockNotFound
		}
		s.logger.Error("UnblockDates: repository error for block id=%d: %v", req.BlockID, err)
		return fmt.Errorf("%w: UnblockDates - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, block.BusinessID, req.UserID); err != nil {
		return err
	}

	if err := s.blockedRepo.Delete(ctx, req.BlockID); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockNotFound) {
			s.logger.Warn("UnblockDates: block id=%d not found during delete", req.BlockID)
			return ErrBlockNotFound
		}
		s.logger.Error("UnblockDates: repository error for block id=%d: %v", req.BlockID, err)
		return fmt.Errorf("%w: UnblockDates - repository error: %v", ErrInternal, err)
	}

	s.invalidateAvailability(ctx, block.BusinessID)

	s.logger.Info("UnblockDates: successfully removed block id=%d", req.BlockID)
	return nil
}

// Вспомогательные методы

// getRoom получает комнату с маппингом ошибок репозитория
func (s *Service) getRoom(ctx context.Context, roomID int64, op string) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("%s: room id=%d not found", op, roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("%s: repository error for room id=%d: %v", op, roomID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return room, nil
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
