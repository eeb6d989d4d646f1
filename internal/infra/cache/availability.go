package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/m04kA/TP-StayService/internal/domain"
)

// ErrCacheMiss возвращается, когда значения в кеше нет
var ErrCacheMiss = errors.New("cache: miss")

// CachedRoomOffer закешированное предложение комнаты на интервал дат
type CachedRoomOffer struct {
	RoomID     int64           `json:"room_id"`
	Number     string          `json:"number"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Nights     int             `json:"nights"`
}

// AvailabilityCache кеш результатов подбора свободных комнат.
// Ключ - бизнес + интервал дат; все ключи бизнеса учитываются во
// вспомогательном множестве, чтобы инвалидация по бизнесу была точечной,
// без SCAN по всему keyspace
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache создает новый кеш доступности
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// Get возвращает закешированные предложения или ErrCacheMiss
func (c *AvailabilityCache) Get(ctx context.Context, businessID int64, checkIn, checkOut time.Time) ([]CachedRoomOffer, error) {
	data, err := c.client.Get(ctx, c.key(businessID, checkIn, checkOut)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get availability: %w", err)
	}

	var offers []CachedRoomOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, fmt.Errorf("cache: decode availability: %w", err)
	}

	return offers, nil
}

// Set кеширует предложения на интервал дат
func (c *AvailabilityCache) Set(ctx context.Context, businessID int64, checkIn, checkOut time.Time, offers []CachedRoomOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("cache: encode availability: %w", err)
	}

	key := c.key(businessID, checkIn, checkOut)
	keysSet := c.keysSetKey(businessID)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, keysSet, key)
	// Множество ключей живет дольше самих ключей, чтобы инвалидация
	// не потеряла ещё живые записи
	pipe.Expire(ctx, keysSet, c.ttl*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: set availability: %w", err)
	}

	return nil
}

// InvalidateBusiness сбрасывает все закешированные интервалы бизнеса
// Вызывается после создания/отмены бронирования и изменений комнат,
// блокировок или ценовых конфигураций
func (c *AvailabilityCache) InvalidateBusiness(ctx context.Context, businessID int64) error {
	keysSet := c.keysSetKey(businessID)

	keys, err := c.client.SMembers(ctx, keysSet).Result()
	if err != nil {
		return fmt.Errorf("cache: list business keys: %w", err)
	}

	keys = append(keys, keysSet)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache: invalidate business: %w", err)
	}

	return nil
}

func (c *AvailabilityCache) key(businessID int64, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("availability:%d:%s:%s",
		businessID, checkIn.Format(domain.DateFormat), checkOut.Format(domain.DateFormat))
}

func (c *AvailabilityCache) keysSetKey(businessID int64) string {
	return fmt.Sprintf("availability:keys:%d", businessID)
}
