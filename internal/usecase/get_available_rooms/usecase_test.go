package get_available_rooms

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TP-StayService/internal/domain"
	"github.com/m04kA/TP-StayService/internal/infra/cache"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
)

// Фейки зависимостей

type fakeRoomRepo struct {
	rooms []*domain.Room
}

func (f *fakeRoomRepo) ListByBusiness(_ context.Context, _ int64) ([]*domain.Room, error) {
	return f.rooms, nil
}

type fakeRuleSetRepo struct {
	ruleSets map[int64]*domain.SeasonalRuleSet
}

func (f *fakeRuleSetRepo) GetActiveByRooms(_ context.Context, _ []int64) (map[int64]*domain.SeasonalRuleSet, error) {
	if f.ruleSets == nil {
		return map[int64]*domain.SeasonalRuleSet{}, nil
	}
	return f.ruleSets, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetOverlappingForRooms(_ context.Context, _ []int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
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

type fakeCache struct {
	stored map[string][]cache.CachedRoomOffer
	gets   int
	sets   int
}

func (f *fakeCache) key(businessID int64, checkIn, checkOut time.Time) string {
	return checkIn.Format(domain.DateFormat) + checkOut.Format(domain.DateFormat)
}

func (f *fakeCache) Get(_ context.Context, businessID int64, checkIn, checkOut time.Time) ([]cache.CachedRoomOffer, error) {
	f.gets++
	offers, ok := f.stored[f.key(businessID, checkIn, checkOut)]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return offers, nil
}

func (f *fakeCache) Set(_ context.Context, businessID int64, checkIn, checkOut time.Time, offers []cache.CachedRoomOffer) error {
	f.sets++
	if f.stored == nil {
		f.stored = map[string][]cache.CachedRoomOffer{}
	}
	f.stored[f.key(businessID, checkIn, checkOut)] = offers
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

func testRooms() []*domain.Room {
	return []*domain.Room{
		{ID: 1, BusinessID: 10, Number: "101", Name: "Standard", BasePrice: dec("1000.00")},
		{ID: 2, BusinessID: 10, Number: "102", Name: "Deluxe", BasePrice: dec("2000.00")},
		{ID: 3, BusinessID: 10, Number: "201", Name: "Suite", BasePrice: dec("3500.00")},
	}
}

func newTestUseCase(
	rooms *fakeRoomRepo,
	ruleSets *fakeRuleSetRepo,
	bookings *fakeBookingRepo,
	blocks *fakeBlockedRepo,
	business *fakeBusinessClient,
	availabilityCache *fakeCache,
) *UseCase {
	uc := NewUseCase(rooms, ruleSets, bookings, blocks, business, availabilityCache, nopLogger{})
	uc.timeProvider = fixedTime{now: date(2025, time.January, 1)}
	return uc
}

func activeBusiness() *fakeBusinessClient {
	return &fakeBusinessClient{business: &businessservice.Business{ID: 10, IsActive: true}}
}

func TestExecute_AllRoomsFreePricedAndOrdered(t *testing.T) {
	c := &fakeCache{}
	uc := newTestUseCase(&fakeRoomRepo{rooms: testRooms()}, &fakeRuleSetRepo{}, &fakeBookingRepo{}, &fakeBlockedRepo{}, activeBusiness(), c)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10,
		CheckIn:    date(2025, time.June, 10),
		CheckOut:   date(2025, time.June, 13),
	})

	require.NoError(t, err)
	require.Len(t, resp.Rooms, 3)
	assert.Equal(t, 3, resp.Nights)

	// Отсортировано по ID комнаты
	assert.Equal(t, int64(1), resp.Rooms[0].RoomID)
	assert.Equal(t, int64(2), resp.Rooms[1].RoomID)
	assert.Equal(t, int64(3), resp.Rooms[2].RoomID)

	// Без конфигураций каждая ночь стоит базовую цену комнаты
	assert.True(t, resp.Rooms[0].TotalPrice.Equal(dec("3000.00")))
	assert.True(t, resp.Rooms[1].TotalPrice.Equal(dec("6000.00")))
	assert.True(t, resp.Rooms[2].TotalPrice.Equal(dec("10500.00")))

	assert.Equal(t, 1, c.sets)
}

func TestExecute_ExcludesBookedAndBlockedRooms(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, RoomID: 1, CheckInDate: date(2025, time.June, 11), CheckOutDate: date(2025, time.June, 14), Status: domain.StatusReserved},
	}}
	blocks := &fakeBlockedRepo{blocks: []*domain.BlockedDateRange{
		{ID: 1, RoomID: 3, StartDate: date(2025, time.June, 1), EndDate: date(2025, time.June, 30)},
	}}
	uc := newTestUseCase(&fakeRoomRepo{rooms: testRooms()}, &fakeRuleSetRepo{}, bookings, blocks, activeBusiness(), &fakeCache{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10,
		CheckIn:    date(2025, time.June, 10),
		CheckOut:   date(2025, time.June, 13),
	})

	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, int64(2), resp.Rooms[0].RoomID)
}

func TestExecute_UsesRuleSetPrices(t *testing.T) {
	peak := dec("5000.00")
	ruleSets := &fakeRuleSetRepo{ruleSets: map[int64]*domain.SeasonalRuleSet{
		2: {
			RoomID:     2,
			BasePrice:  dec("1800.00"),
			PeakPrice:  &peak,
			PeakMonths: domain.NewMonthSet(time.June),
			IsActive:   true,
		},
	}}
	uc := newTestUseCase(&fakeRoomRepo{rooms: testRooms()}, ruleSets, &fakeBookingRepo{}, &fakeBlockedRepo{}, activeBusiness(), &fakeCache{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10,
		CheckIn:    date(2025, time.June, 10),
		CheckOut:   date(2025, time.June, 12),
	})

	require.NoError(t, err)
	require.Len(t, resp.Rooms, 3)
	// Комната 2 тарифицируется по пиковому сезону, остальные - по базовой цене
	assert.True(t, resp.Rooms[1].TotalPrice.Equal(dec("10000.00")))
	assert.True(t, resp.Rooms[0].TotalPrice.Equal(dec("2000.00")))
}

func TestExecute_CacheHitSkipsRepositories(t *testing.T) {
	c := &fakeCache{}
	uc := newTestUseCase(&fakeRoomRepo{rooms: testRooms()}, &fakeRuleSetRepo{}, &fakeBookingRepo{}, &fakeBlockedRepo{}, activeBusiness(), c)

	req := &Request{
		BusinessID: 10,
		CheckIn:    date(2025, time.June, 10),
		CheckOut:   date(2025, time.June, 13),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Rooms, second.Rooms)
	assert.Equal(t, 2, c.gets)
	// Повторный запрос обслужен из кеша, без повторного Set
	assert.Equal(t, 1, c.sets)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	business := &fakeBusinessClient{err: businessservice.ErrBusinessNotFound}
	uc := newTestUseCase(&fakeRoomRepo{}, &fakeRuleSetRepo{}, &fakeBookingRepo{}, &fakeBlockedRepo{}, business, &fakeCache{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10,
		CheckIn:    date(2025, time.June, 10),
		CheckOut:   date(2025, time.June, 13),
	})

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newTestUseCase(&fakeRoomRepo{}, &fakeRuleSetRepo{}, &fakeBookingRepo{}, &fakeBlockedRepo{}, activeBusiness(), &fakeCache{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10,
		CheckIn:    date(2025, time.June, 13),
		CheckOut:   date(2025, time.June, 13),
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
