package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rooms(ids ...int64) []*Room {
	result := make([]*Room, len(ids))
	for i, id := range ids {
		result[i] = &Room{ID: id, BusinessID: 10}
	}
	return result
}

func roomIDs(result []*Room) []int64 {
	ids := make([]int64, len(result))
	for i, r := range result {
		ids[i] = r.ID
	}
	return ids
}

func TestFindAvailableRooms_NoConflicts(t *testing.T) {
	result := FindAvailableRooms(
		rooms(3, 1, 2),
		date(2025, time.March, 1), date(2025, time.March, 5),
		nil, nil,
	)

	// Стабильный порядок по возрастанию ID
	assert.Equal(t, []int64{1, 2, 3}, roomIDs(result))
}

func TestFindAvailableRooms_OverlappingBookingExcludes(t *testing.T) {
	bookings := []*Booking{
		{RoomID: 1, Status: StatusReserved, CheckInDate: date(2025, time.March, 3), CheckOutDate: date(2025, time.March, 6)},
	}

	result := FindAvailableRooms(
		rooms(1, 2),
		date(2025, time.March, 1), date(2025, time.March, 5),
		bookings, nil,
	)

	assert.Equal(t, []int64{2}, roomIDs(result))
}

func TestFindAvailableRooms_SameDayTurnover(t *testing.T) {
	// Выезд 5 марта не конфликтует с заездом 5 марта - полуоткрытые интервалы
	bookings := []*Booking{
		{RoomID: 1, Status: StatusReserved, CheckInDate: date(2025, time.March, 1), CheckOutDate: date(2025, time.March, 5)},
	}

	result := FindAvailableRooms(
		rooms(1),
		date(2025, time.March, 5), date(2025, time.March, 8),
		bookings, nil,
	)

	assert.Equal(t, []int64{1}, roomIDs(result))
}

func TestFindAvailableRooms_CheckedOutBookingIgnored(t *testing.T) {
	bookings := []*Booking{
		{RoomID: 1, Status: StatusCheckedOut, CheckInDate: date(2025, time.March, 1), CheckOutDate: date(2025, time.March, 5)},
	}

	result := FindAvailableRooms(
		rooms(1),
		date(2025, time.March, 5), date(2025, time.March, 8),
		bookings, nil,
	)

	assert.Equal(t, []int64{1}, roomIDs(result))
}

func TestFindAvailableRooms_CanceledBookingIgnored(t *testing.T) {
	// Отменённое бронирование, даже полностью накрывающее интервал,
	// комнату не исключает
	bookings := []*Booking{
		{RoomID: 1, Status: StatusCanceled, CheckInDate: date(2025, time.March, 1), CheckOutDate: date(2025, time.March, 31)},
	}

	result := FindAvailableRooms(
		rooms(1),
		date(2025, time.March, 10), date(2025, time.March, 12),
		bookings, nil,
	)

	assert.Equal(t, []int64{1}, roomIDs(result))
}

func TestFindAvailableRooms_PendingAndCheckedInBlock(t *testing.T) {
	bookings := []*Booking{
		{RoomID: 1, Status: StatusPending, CheckInDate: date(2025, time.March, 2), CheckOutDate: date(2025, time.March, 4)},
		{RoomID: 2, Status: StatusCheckedIn, CheckInDate: date(2025, time.March, 2), CheckOutDate: date(2025, time.March, 4)},
	}

	result := FindAvailableRooms(
		rooms(1, 2, 3),
		date(2025, time.March, 1), date(2025, time.March, 5),
		bookings, nil,
	)

	assert.Equal(t, []int64{3}, roomIDs(result))
}

func TestFindAvailableRooms_BlockedRangeExcludes(t *testing.T) {
	// Блокировка целиком внутри интервала исключает комнату
	// даже без единого бронирования
	blocks := []*BlockedDateRange{
		{RoomID: 2, StartDate: date(2025, time.March, 2), EndDate: date(2025, time.March, 3)},
	}

	result := FindAvailableRooms(
		rooms(1, 2),
		date(2025, time.March, 1), date(2025, time.March, 5),
		nil, blocks,
	)

	assert.Equal(t, []int64{1}, roomIDs(result))
}

func TestFindAvailableRooms_BlockedRangeBoundaryDoesNotConflict(t *testing.T) {
	blocks := []*BlockedDateRange{
		{RoomID: 1, StartDate: date(2025, time.March, 5), EndDate: date(2025, time.March, 10)},
	}

	result := FindAvailableRooms(
		rooms(1),
		date(2025, time.March, 1), date(2025, time.March, 5),
		nil, blocks,
	)

	assert.Equal(t, []int64{1}, roomIDs(result))
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{
			name:   "identical ranges",
			aStart: date(2025, 3, 1), aEnd: date(2025, 3, 5),
			bStart: date(2025, 3, 1), bEnd: date(2025, 3, 5),
			want: true,
		},
		{
			name:   "partial overlap",
			aStart: date(2025, 3, 1), aEnd: date(2025, 3, 5),
			bStart: date(2025, 3, 4), bEnd: date(2025, 3, 8),
			want: true,
		},
		{
			name:   "contained range",
			aStart: date(2025, 3, 2), aEnd: date(2025, 3, 3),
			bStart: date(2025, 3, 1), bEnd: date(2025, 3, 10),
			want: true,
		},
		{
			name:   "touching boundaries",
			aStart: date(2025, 3, 1), aEnd: date(2025, 3, 5),
			bStart: date(2025, 3, 5), bEnd: date(2025, 3, 8),
			want: false,
		},
		{
			name:   "disjoint ranges",
			aStart: date(2025, 3, 1), aEnd: date(2025, 3, 3),
			bStart: date(2025, 3, 10), bEnd: date(2025, 3, 12),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			assert.Equal(t, tc.want, RangesOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestValidStatusTransition(t *testing.T) {
	assert.True(t, ValidStatusTransition(StatusPending, StatusReserved))
	assert.True(t, ValidStatusTransition(StatusReserved, StatusCheckedIn))
	assert.True(t, ValidStatusTransition(StatusCheckedIn, StatusCheckedOut))
	assert.True(t, ValidStatusTransition(StatusPending, StatusCanceled))

	assert.False(t, ValidStatusTransition(StatusCheckedIn, StatusCanceled))
	assert.False(t, ValidStatusTransition(StatusCanceled, StatusPending))
	assert.False(t, ValidStatusTransition(StatusCheckedOut, StatusCheckedIn))
}

func TestNightsBetween(t *testing.T) {
	require.Equal(t, 3, NightsBetween(date(2025, time.January, 1), date(2025, time.January, 4)))
	require.Equal(t, 1, NightsBetween(date(2025, time.February, 28), date(2025, time.March, 1)))
}
