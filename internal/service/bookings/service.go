package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TP-StayService/internal/domain"
	bookingRepo "github.com/m04kA/TP-StayService/internal/infra/storage/booking"
	businessClient "github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	businessClient BusinessServiceClient
	cache          CacheInvalidator
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessClient BusinessServiceClient,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		businessClient: businessClient,
		cache:          cache,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBusinessBookings получает бронирования бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по комнате, периоду, статусу и включению неактивных
// бронирований. Доступно только менеджерам бизнеса.
//
// Примеры использования:
// - Все активные бронирования: GetBusinessBookings(ctx, &GetBusinessBookingsRequest{BusinessID: 123, UserID: 456})
// - Бронирования конкретной комнаты: указать RoomID
// - Бронирования за период: StartDate и EndDate
// - Только заселённые: указать Status = "checked_in"
// - Включая отменённые и выехавшие: IncludeInactive = true
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.RoomID != nil {
		logMsg += fmt.Sprintf(", room=%d", *req.RoomID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: successfully fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование,
// менеджер - любое бронирование своего бизнеса
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Проверяем права: владелец бронирования или менеджер бизнеса
	if booking.UserID != req.UserID {
		if err := s.checkManagerAccess(ctx, booking.BusinessID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отменённое бронирование освобождает даты - сбрасываем кеш доступности
	s.invalidateAvailability(ctx, booking.BusinessID)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только менеджерам бизнеса, переход проверяется по матрице статусов
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, booking.BusinessID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Проверяем допустимость перехода
	if !domain.ValidStatusTransition(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidStatusTransition
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Выезд освобождает даты комнаты - сбрасываем кеш доступности
	if newStatus == domain.StatusCheckedOut {
		s.invalidateAvailability(ctx, booking.BusinessID)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер бизнеса
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером бизнеса
	if err := s.checkManagerAccess(ctx, booking.BusinessID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	// Получаем бизнес через BusinessService
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

	s.logger.Info("checkManagerAccess: user=%d is manager of business=%d", userID, businessID)
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
