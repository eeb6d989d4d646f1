package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TP-StayService/internal/domain"
	blockedRepo "github.com/m04kA/TP-StayService/internal/infra/storage/blocked"
	roomRepo "github.com/m04kA/TP-StayService/internal/infra/storage/room"
	"github.com/m04kA/TP-StayService/internal/integrations/businessservice"
	"github.com/m04kA/TP-StayService/internal/service/rooms/models"
	"github.com/m04kA/TP-StayService/pkg/ptr"
)

// Фейки зависимостей

type fakeRoomRepo struct {
	room      *domain.Room
	getErr    error
	list      []*domain.Room
	createErr error
	created   *domain.Room
	updated   bool
	deleted   []int64
	deleteErr error
}

func (f *fakeRoomRepo) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *room
	created.ID = 7
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, _ int64) (*domain.Room, error) {
	return f.room, f.getErr
}

func (f *fakeRoomRepo) ListByBusiness(_ context.Context, _ int64) ([]*domain.Room, error) {
	return f.list, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, _ int64, name *string, basePrice *decimal.Decimal) error {
	f.updated = true
	if name != nil {
		f.room.Name = *name
	}
	if basePrice != nil {
		f.room.BasePrice = *basePrice
	}
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBlockedRepo struct {
	block     *domain.BlockedDateRange
	getErr    error
	created   *domain.BlockedDateRange
	deleted   []int64
	deleteErr error
}

func (f *fakeBlockedRepo) Create(_ context.Context, block *domain.BlockedDateRange) (*domain.BlockedDateRange, error) {
	created := *block
	created.ID = 15
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeBlockedRepo) GetByID(_ context.Context, _ int64) (*domain.BlockedDateRange, error) {
	return f.block, f.getErr
}

func (f *fakeBlockedRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookingChecker struct {
	exists bool
}

func (f *fakeBookingChecker) ExistsForRoom(_ context.Context, _ int64) (bool, error) {
	return f.exists, nil
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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDeps() (*fakeRoomRepo, *fakeBlockedRepo, *fakeBookingChecker, *fakeBusinessClient, *fakeCache) {
	return &fakeRoomRepo{room: &domain.Room{ID: 7, BusinessID: 10, Number: "101", Name: "Standard", BasePrice: dec("1500.00")}},
		&fakeBlockedRepo{},
		&fakeBookingChecker{},
		&fakeBusinessClient{business: &businessservice.Business{ID: 10, OwnerID: 1, ManagerIDs: []int64{2}, IsActive: true}},
		&fakeCache{}
}

func newTestService(rooms *fakeRoomRepo, blocks *fakeBlockedRepo, checker *fakeBookingChecker, business *fakeBusinessClient, cache *fakeCache) *Service {
	return NewService(rooms, blocks, checker, business, cache, nopLogger{})
}

func TestCreateRoom_ManagerCreatesRoom(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	resp, err := svc.CreateRoom(context.Background(), &models.CreateRoomRequest{
		UserID:     1,
		BusinessID: 10,
		Number:     "202",
		Name:       "Deluxe",
		BasePrice:  dec("2500.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "202", resp.Number)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestCreateRoom_EmptyNumber(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	_, err := svc.CreateRoom(context.Background(), &models.CreateRoomRequest{
		UserID:     1,
		BusinessID: 10,
		Number:     "   ",
		BasePrice:  dec("2500.00"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRoom_DuplicateNumber(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	rooms.createErr = roomRepo.ErrDuplicateNumber
	svc := newTestService(rooms, blocks, checker, business, cache)

	_, err := svc.CreateRoom(context.Background(), &models.CreateRoomRequest{
		UserID:     1,
		BusinessID: 10,
		Number:     "101",
		BasePrice:  dec("2500.00"),
	})

	assert.ErrorIs(t, err, ErrDuplicateNumber)
	assert.Empty(t, cache.invalidated)
}

func TestCreateRoom_NonManagerDenied(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	_, err := svc.CreateRoom(context.Background(), &models.CreateRoomRequest{
		UserID:     99,
		BusinessID: 10,
		Number:     "202",
		BasePrice:  dec("2500.00"),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, rooms.created)
}

func TestUpdateRoom_PriceChangeInvalidatesCache(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	newPrice := dec("1800.00")
	resp, err := svc.UpdateRoom(context.Background(), &models.UpdateRoomRequest{
		UserID:    2,
		RoomID:    7,
		BasePrice: &newPrice,
	})

	require.NoError(t, err)
	assert.True(t, resp.BasePrice.Equal(dec("1800.00")))
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestUpdateRoom_NameOnlyKeepsCache(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	resp, err := svc.UpdateRoom(context.Background(), &models.UpdateRoomRequest{
		UserID: 2,
		RoomID: 7,
		Name:   ptr.Ptr("Superior"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Superior", resp.Name)
	// Название не влияет на котировки - кеш не сбрасываем
	assert.Empty(t, cache.invalidated)
}

func TestUpdateRoom_NothingToUpdate(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	_, err := svc.UpdateRoom(context.Background(), &models.UpdateRoomRequest{
		UserID: 2,
		RoomID: 7,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteRoom_RefusesWhenBookingsExist(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	checker.exists = true
	svc := newTestService(rooms, blocks, checker, business, cache)

	err := svc.DeleteRoom(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrRoomHasBookings)
	assert.Empty(t, rooms.deleted)
}

func TestDeleteRoom_RepositoryRaceMapsToSameError(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	rooms.deleteErr = roomRepo.ErrRoomHasBookings
	svc := newTestService(rooms, blocks, checker, business, cache)

	err := svc.DeleteRoom(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrRoomHasBookings)
}

func TestDeleteRoom_Success(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	err := svc.DeleteRoom(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, rooms.deleted)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestBlockDates_CreatesHalfOpenRange(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	resp, err := svc.BlockDates(context.Background(), &models.BlockDatesRequest{
		UserID:    2,
		RoomID:    7,
		StartDate: date(2025, time.April, 1),
		EndDate:   date(2025, time.April, 5),
		Reason:    ptr.Ptr("ремонт"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.ID)
	assert.Equal(t, "2025-04-01", resp.StartDate)
	assert.Equal(t, "2025-04-05", resp.EndDate)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestBlockDates_InvalidRange(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	svc := newTestService(rooms, blocks, checker, business, cache)

	_, err := svc.BlockDates(context.Background(), &models.BlockDatesRequest{
		UserID:    2,
		RoomID:    7,
		StartDate: date(2025, time.April, 5),
		EndDate:   date(2025, time.April, 5),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, blocks.created)
}

func TestUnblockDates_ManagerRemovesBlock(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	blocks.block = &domain.BlockedDateRange{
		ID:         15,
		RoomID:     7,
		BusinessID: 10,
		StartDate:  date(2025, time.April, 1),
		EndDate:    date(2025, time.April, 5),
	}
	svc := newTestService(rooms, blocks, checker, business, cache)

	err := svc.UnblockDates(context.Background(), &models.UnblockDatesRequest{UserID: 2, BlockID: 15})

	require.NoError(t, err)
	assert.Equal(t, []int64{15}, blocks.deleted)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestUnblockDates_BlockNotFound(t *testing.T) {
	rooms, blocks, checker, business, cache := testDeps()
	blocks.getErr = blockedRepo.ErrBlockNotFound
	svc := newTestService(rooms, blocks, checker, business, cache)

	err := svc.UnblockDates(context.Background(), &models.UnblockDatesRequest{UserID: 2, BlockID: 15})

	assert.ErrorIs(t, err, ErrBlockNotFound)
}
