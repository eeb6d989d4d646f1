package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TP-StayService/internal/domain"
	bookingRepo "github.com/m04kA/TP-StayService/internal/infra/storage/booking"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/internal/service/bookings/models"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	booking       *domain.Booking
	getErr        error
	list          []*domain.Booking
	listErr       error
	cancelled     []int64
	cancelReasons []string
	statusUpdates map[int64]domain.BookingStatus
	filter        *domain.BusinessBookingsFilter
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.list, f.listErr
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	f.filter = &filter
	return f.list, f.listErr
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int64]domain.BookingStatus)
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelled = append(f.cancelled, id)
	f.cancelReasons = append(f.cancelReasons, reason)
	return nil
}

type fakeBusinessClient struct {
	business *businessservice.Business
	err      error
}

func (f *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	return f.business, f.err
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) InvalidateBusiness(_ context.Context, businessID int64) error {
	f.invalidated = append(f.invalidated, businessID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           42,
		RoomID:       7,
		BusinessID:   10,
		UserID:       3,
		CheckInDate:  date(2025, time.March, 10),
		CheckOutDate: date(2025, time.March, 13),
		Nights:       3,
		Status:       status,
		TotalPrice:   decimal.RequireFromString("4500.00"),
	}
}

func testDeps(status domain.BookingStatus) (*fakeBookingRepo, *fakeBusinessClient, *fakeCache) {
	return &fakeBookingRepo{booking: testBooking(status)},
		&fakeBusinessClient{business: &businessservice.Business{ID: 10, OwnerID: 1, ManagerIDs: []int64{2}, IsActive: true}},
		&fakeCache{}
}

func TestGetByID_OwnerHasAccess(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 42, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-03-10", resp.CheckInDate)
	assert.Equal(t, "2025-03-13", resp.CheckOutDate)
}

func TestGetByID_ManagerHasAccess(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 2)

	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	repo.booking = nil
	repo.getErr = bookingRepo.ErrBookingNotFound
	svc := NewService(repo, business, cache, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 3)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_OwnerCancelsPendingBooking(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusPending)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             3,
		CancellationReason: "планы изменились",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{42}, repo.cancelled)
	assert.Equal(t, []string{"планы изменились"}, repo.cancelReasons)
	// Отмена освобождает даты - кеш доступности сброшен
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestCancel_ManagerCancelsForeignBooking(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 2})

	require.NoError(t, err)
	assert.Equal(t, []int64{42}, repo.cancelled)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 99})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, cache.invalidated)
}

func TestCancel_CheckedInCannotBeCancelled(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusCheckedIn)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 3})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusPending)
	svc := NewService(repo, business, cache, nopLogger{})

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             3,
		CancellationReason: string(long),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_ManagerMovesReservedToCheckedIn(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 2,
		Status: "checked_in",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedIn, repo.statusUpdates[42])
	// Заселение не освобождает даты - кеш не трогаем
	assert.Empty(t, cache.invalidated)
}

func TestUpdateStatus_CheckoutInvalidatesCache(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusCheckedIn)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 2,
		Status: "checked_out",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusCheckedOut)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 2,
		Status: "checked_in",
	})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Empty(t, repo.statusUpdates)
}

func TestUpdateStatus_NonManagerDenied(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	// Даже владелец бронирования не управляет статусами
	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 3,
		Status: "checked_in",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 2,
		Status: "sleeping",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBusinessBookings_ManagerGetsFilteredList(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	repo.list = []*domain.Booking{testBooking(domain.StatusReserved)}
	svc := NewService(repo, business, cache, nopLogger{})

	roomID := int64(7)
	status := "reserved"
	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     2,
		BusinessID: 10,
		RoomID:     &roomID,
		Status:     &status,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	require.NotNil(t, repo.filter)
	assert.Equal(t, int64(10), repo.filter.BusinessID)
	require.NotNil(t, repo.filter.RoomID)
	assert.Equal(t, int64(7), *repo.filter.RoomID)
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.StatusReserved, *repo.filter.Status)
}

func TestGetBusinessBookings_NonManagerDenied(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	_, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     99,
		BusinessID: 10,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_InvalidStatusFilter(t *testing.T) {
	repo, business, cache := testDeps(domain.StatusReserved)
	svc := NewService(repo, business, cache, nopLogger{})

	bad := "unknown"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 3,
		Status: &bad,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
