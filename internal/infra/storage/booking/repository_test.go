package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TP-StayService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_Create_TranslatesExclusionViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	booking := &domain.Booking{
		RoomID:       1,
		BusinessID:   10,
		UserID:       42,
		CheckInDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:       domain.StatusReserved,
		TotalPrice:   decimal.RequireFromString("4000.00"),
		Nights:       4,
	}

	_, err := repo.Create(context.Background(), booking)

	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ReturnsGeneratedFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(
			int64(1), int64(10), int64(42),
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			domain.StatusReserved,
			decimal.RequireFromString("4000.00"),
			4,
			nil, nil, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	booking := &domain.Booking{
		RoomID:       1,
		BusinessID:   10,
		UserID:       42,
		CheckInDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:       domain.StatusReserved,
		TotalPrice:   decimal.RequireFromString("4000.00"),
		Nights:       4,
	}

	created, err := repo.Create(context.Background(), booking)

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id = .+").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetOverlappingForRooms_EmptyRoomList(t *testing.T) {
	repo, _ := newMockRepo(t)

	bookings, err := repo.GetOverlappingForRooms(
		context.Background(),
		nil,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	)

	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestRepository_GetOverlappingForRooms_ScansRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows(bookingColumns).
		AddRow(
			int64(5), int64(1), int64(10), int64(42),
			time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			"reserved", "2000.00", 2,
			nil, nil, nil, nil, nil, now, now,
		)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE room_id IN .+").
		WillReturnRows(rows)

	bookings, err := repo.GetOverlappingForRooms(
		context.Background(),
		[]int64{1, 2},
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(5), bookings[0].ID)
	assert.Equal(t, domain.StatusReserved, bookings[0].Status)
	assert.True(t, bookings[0].TotalPrice.Equal(decimal.RequireFromString("2000.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE bookings SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 404, "guest request")

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
