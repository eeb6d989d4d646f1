package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	checkIn  = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
)

func testOffers() []CachedRoomOffer {
	return []CachedRoomOffer{
		{RoomID: 1, Number: "101", Name: "Стандарт", TotalPrice: decimal.RequireFromString("4000.00"), Nights: 4},
	}
}

func TestAvailabilityCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewAvailabilityCache(client, time.Minute)

	mock.ExpectGet("availability:10:2025-03-01:2025-03-05").RedisNil()

	_, err := c.Get(context.Background(), 10, checkIn, checkOut)

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityCache_SetThenGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewAvailabilityCache(client, time.Minute)

	offers := testOffers()
	data, err := json.Marshal(offers)
	require.NoError(t, err)

	mock.ExpectTxPipeline()
	mock.ExpectSet("availability:10:2025-03-01:2025-03-05", data, time.Minute).SetVal("OK")
	mock.ExpectSAdd("availability:keys:10", "availability:10:2025-03-01:2025-03-05").SetVal(1)
	mock.ExpectExpire("availability:keys:10", 2*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	require.NoError(t, c.Set(context.Background(), 10, checkIn, checkOut, offers))

	mock.ExpectGet("availability:10:2025-03-01:2025-03-05").SetVal(string(data))

	got, err := c.Get(context.Background(), 10, checkIn, checkOut)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].RoomID)
	assert.True(t, got[0].TotalPrice.Equal(decimal.RequireFromString("4000.00")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityCache_InvalidateBusiness(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewAvailabilityCache(client, time.Minute)

	mock.ExpectSMembers("availability:keys:10").
		SetVal([]string{"availability:10:2025-03-01:2025-03-05"})
	mock.ExpectDel("availability:10:2025-03-01:2025-03-05", "availability:keys:10").SetVal(2)

	require.NoError(t, c.InvalidateBusiness(context.Background(), 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}
