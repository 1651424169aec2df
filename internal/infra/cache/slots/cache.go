package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

var (
	ErrCacheRead  = errors.New("slot cache: read failed")
	ErrCacheWrite = errors.New("slot cache: write failed")
)

const keyPrefix = "slots"

// Key параметры запроса, по которым кешируется список слотов
type Key struct {
	ShopID    string
	ServiceID string
	StaffID   string
	Date      string // день вычисления, YYYY-MM-DD
}

// Cache кеш вычисленных слотов в Redis.
// Любая запись по магазину увеличивает версию, старые ключи дожидаются TTL.
type Cache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewCache(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// VersionedKey ключ списка слотов с зафиксированной версией магазина
type VersionedKey string

// Versioned читает текущую версию магазина и фиксирует её в ключе.
// Версию нужно читать до загрузки данных: если запись по магазину случится во время расчета,
// результат уйдет под старую версию и не будет прочитан.
func (c *Cache) Versioned(ctx context.Context, key Key) (VersionedKey, error) {
	version, err := c.rdb.Get(ctx, versionKey(key.ShopID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: version: %v", ErrCacheRead, err)
	}

	return VersionedKey(fmt.Sprintf("%s:%s:v%d:%s:%s:%s",
		keyPrefix, key.ShopID, version, key.ServiceID, key.StaffID, key.Date)), nil
}

// Get возвращает закешированные слоты. ok=false при промахе.
func (c *Cache) Get(ctx context.Context, key VersionedKey) ([]domain.Slot, bool, error) {
	data, err := c.rdb.Get(ctx, string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var out []domain.Slot
	if err := json.Unmarshal(data, &out); err != nil {
		// Испорченная запись равносильна промаху
		return nil, false, nil
	}

	return out, true, nil
}

// Set сохраняет слоты под версией, зафиксированной в ключе
func (c *Cache) Set(ctx context.Context, key VersionedKey, slots []domain.Slot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrCacheWrite, err)
	}

	if err := c.rdb.Set(ctx, string(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	return nil
}

// Invalidate делает недоступными все закешированные списки магазина
func (c *Cache) Invalidate(ctx context.Context, shopID string) error {
	if err := c.rdb.Incr(ctx, versionKey(shopID)).Err(); err != nil {
		return fmt.Errorf("%w: bump version: %v", ErrCacheWrite, err)
	}
	return nil
}

func versionKey(shopID string) string {
	return keyPrefix + ":ver:" + shopID
}
