package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TP-StayService/internal/domain"
	bookingRepo "github.com/m04kA/TP-StayService/internal/infra/storage/booking"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/internal/integrations/userservice"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	overlapping []*domain.Booking
	createErr   error
	created     *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetOverlappingForRooms(_ context.Context, _ []int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.overlapping, nil
}

type fakeRoomRepo struct {
	room *domain.Room
	err  error
}

func (f *fakeRoomRepo) GetByID(_ context.Context, _ int64) (*domain.Room, error) {
	return f.room, f.err
}

type fakeRuleSetRepo struct {
	ruleSet *domain.SeasonalRuleSet
	err     error
}

func (f *fakeRuleSetRepo) GetActiveByRoom(_ context.Context, _ int64) (*domain.SeasonalRuleSet, error) {
	return f.ruleSet, f.err
}

type fakeBlockedRepo struct {
	blocks []*domain.BlockedDateRange
}

func (f *fakeBlockedRepo) GetOverlappingForRooms(_ context.Context, _ []int64, _, _ time.Time) ([]*domain.BlockedDateRange, error) {
	return f.blocks, nil
}

type fakeBusinessClient struct {
	business *businessservice.Business
	err      error
}

func (f *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	return f.business, f.err
}

type fakeUserClient struct {
	guest *userservice.Guest
	err   error
}

func (f *fakeUserClient) GetGuestProfileWithGracefulDegradation(_ context.Context, _ int64) (*userservice.Guest, error) {
	return f.guest, f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) InvalidateBusiness(_ context.Context, businessID int64) error {
	f.invalidated = append(f.invalidated, businessID)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDeps() (*fakeBookingRepo, *fakeRoomRepo, *fakeRuleSetRepo, *fakeBlockedRepo, *fakeBusinessClient, *fakeUserClient, *fakeCache) {
	return &fakeBookingRepo{},
		&fakeRoomRepo{room: &domain.Room{ID: 7, BusinessID: 10, Number: "101", Name: "Standard", BasePrice: dec("1500.00")}},
		&fakeRuleSetRepo{},
		&fakeBlockedRepo{},
		&fakeBusinessClient{business: &businessservice.Business{ID: 10, IsActive: true}},
		&fakeUserClient{guest: &userservice.Guest{ID: 3, FirstName: "Anna", LastName: "Ivanova", Phone: "+79990001122"}},
		&fakeCache{}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	rooms *fakeRoomRepo,
	ruleSets *fakeRuleSetRepo,
	blocks *fakeBlockedRepo,
	business *fakeBusinessClient,
	users *fakeUserClient,
	cache *fakeCache,
) *UseCase {
	uc := NewUseCase(bookings, rooms, ruleSets, blocks, business, users, &fakeTxManager{}, cache, nopLogger{})
	uc.timeProvider = fixedTime{now: date(2025, time.January, 1)}
	return uc
}

func TestExecute_CreatesBookingWithComputedTotal(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 10),
		CheckOut: date(2025, time.March, 13),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 3, resp.Nights)
	assert.True(t, resp.TotalPrice.Equal(dec("4500.00")))
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	require.NotNil(t, resp.GuestName)
	assert.Equal(t, "Anna Ivanova", *resp.GuestName)
	require.NotNil(t, resp.GuestPhone)
	assert.Equal(t, "+79990001122", *resp.GuestPhone)

	// Сохранённый итог - ровно тот, что рассчитан в транзакции
	require.NotNil(t, bookings.created)
	assert.True(t, bookings.created.TotalPrice.Equal(dec("4500.00")))
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestExecute_UsesActiveRuleSetForPricing(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	peak := dec("3000.00")
	ruleSets.ruleSet = &domain.SeasonalRuleSet{
		RoomID:     7,
		BasePrice:  dec("1200.00"),
		PeakPrice:  &peak,
		PeakMonths: domain.NewMonthSet(time.March),
		IsActive:   true,
	}
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 10),
		CheckOut: date(2025, time.March, 12),
	})

	require.NoError(t, err)
	assert.True(t, resp.TotalPrice.Equal(dec("6000.00")))
}

func TestExecute_RoomNotAvailable(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	bookings.overlapping = []*domain.Booking{
		{
			ID:           1,
			RoomID:       7,
			CheckInDate:  date(2025, time.March, 11),
			CheckOutDate: date(2025, time.March, 14),
			Status:       domain.StatusReserved,
		},
	}
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 10),
		CheckOut: date(2025, time.March, 13),
	})

	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	assert.Nil(t, bookings.created)
	assert.Empty(t, cache.invalidated)
}

func TestExecute_SameDayTurnoverAllowed(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	// Выезд прежнего гостя в день заезда нового - не конфликт
	bookings.overlapping = []*domain.Booking{
		{
			ID:           1,
			RoomID:       7,
			CheckInDate:  date(2025, time.March, 7),
			CheckOutDate: date(2025, time.March, 10),
			Status:       domain.StatusReserved,
		},
	}
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 10),
		CheckOut: date(2025, time.March, 13),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_ConflictFromRepository(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	bookings.createErr = fmt.Errorf("create: %w", bookingRepo.ErrBookingConflict)
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 10),
		CheckOut: date(2025, time.March, 13),
	})

	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Empty(t, cache.invalidated)
}

func TestExecute_GracefulDegradationWithoutGuestProfile(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	users.guest = nil
	users.err = userservice.ErrServiceDegraded
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 10),
		CheckOut: date(2025, time.March, 13),
	})

	require.NoError(t, err)
	assert.Nil(t, resp.GuestName)
	assert.Nil(t, resp.GuestPhone)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 13),
		CheckOut: date(2025, time.March, 10),
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_CheckInInPast(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2024, time.December, 20),
		CheckOut: date(2024, time.December, 25),
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_InactiveBusiness(t *testing.T) {
	bookings, rooms, ruleSets, blocks, business, users, cache := testDeps()
	business.business.IsActive = false
	uc := newTestUseCase(bookings, rooms, ruleSets, blocks, business, users, cache)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   3,
		RoomID:   7,
		CheckIn:  date(2025, time.March, 10),
		CheckOut: date(2025, time.March, 13),
	})

	assert.ErrorIs(t, err, ErrBusinessInactive)
}
