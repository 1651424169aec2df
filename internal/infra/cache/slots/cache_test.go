package slots

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewCache(rdb, 30*time.Second), mr
}

func sampleSlots() []domain.Slot {
	return []domain.Slot{{
		ID:        "gen_s1_2030-01-15_09:00",
		Date:      "2030-01-15",
		Time:      "09:00",
		Duration:  60,
		StaffID:   ptr.Ptr("s1"),
		StaffName: ptr.Ptr("Anna"),
		Generated: true,
		Available: true,
	}}
}

func versioned(t *testing.T, cache *Cache, key Key) VersionedKey {
	t.Helper()
	vk, err := cache.Versioned(context.Background(), key)
	require.NoError(t, err)
	return vk
}

func TestCache_MissThenHit(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	key := versioned(t, cache, Key{ShopID: "shop-1", ServiceID: "svc-1", Date: "2030-01-14"})
	assert.Equal(t, VersionedKey("slots:shop-1:v0:svc-1::2030-01-14"), key)

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, sampleSlots()))
	assert.True(t, mr.Exists("slots:shop-1:v0:svc-1::2030-01-14"))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSlots(), got)

	mr.FastForward(31 * time.Second)
	_, ok, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_InvalidateIsPerShop(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	shop1 := Key{ShopID: "shop-1", ServiceID: "svc-1", StaffID: "s1", Date: "2030-01-14"}
	shop2 := Key{ShopID: "shop-2", ServiceID: "svc-1", StaffID: "s1", Date: "2030-01-14"}

	require.NoError(t, cache.Set(ctx, versioned(t, cache, shop1), sampleSlots()))
	require.NoError(t, cache.Set(ctx, versioned(t, cache, shop2), sampleSlots()))

	require.NoError(t, cache.Invalidate(ctx, "shop-1"))

	assert.Equal(t, VersionedKey("slots:shop-1:v1:svc-1:s1:2030-01-14"), versioned(t, cache, shop1))
	_, ok, err := cache.Get(ctx, versioned(t, cache, shop1))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.Get(ctx, versioned(t, cache, shop2))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCache_InvalidateDuringComputeIsNotServed(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	key := Key{ShopID: "shop-1", ServiceID: "svc-1", Date: "2030-01-14"}

	// Версия фиксируется до расчета, запись по магазину случается во время расчета
	before := versioned(t, cache, key)
	require.NoError(t, cache.Invalidate(ctx, "shop-1"))
	require.NoError(t, cache.Set(ctx, before, sampleSlots()))

	_, ok, err := cache.Get(ctx, versioned(t, cache, key))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := newTestCache(t)

	require.NoError(t, mr.Set("slots:shop-1:v0:svc-1::2030-01-14", "{not json"))

	_, ok, err := cache.Get(context.Background(), "slots:shop-1:v0:svc-1::2030-01-14")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_RedisDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, err := cache.Versioned(context.Background(), Key{ShopID: "shop-1"})
	assert.ErrorIs(t, err, ErrCacheRead)

	_, _, err = cache.Get(context.Background(), "slots:shop-1:v0:::")
	assert.ErrorIs(t, err, ErrCacheRead)

	err = cache.Set(context.Background(), "slots:shop-1:v0:::", sampleSlots())
	assert.ErrorIs(t, err, ErrCacheWrite)
}
