package cache

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisPrintAreaCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisPrintAreaCache(client, time.Minute), mr
}

func TestGet_CacheMiss(t *testing.T) {
	c, _ := setupTestRedis(t)

	rect, err := c.Get(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, rect)
}

func TestSetThenGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	area := &model.PrintAreaRect{X: 0.1, Y: 0.2, W: 0.5, H: 0.6}
	require.NoError(t, c.Set(ctx, 7, 3, 0, area))

	got, err := c.Get(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, area, got)

	assert.True(t, mr.Exists("print_area:7"))
	assert.Equal(t, time.Minute, mr.TTL("print_area:7"))
}

func TestSet_NoAreaIsCached(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 7, 0, 0, nil))

	got, err := c.Get(ctx, 7, 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVariantsAreSeparateFields(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 7, 0, 0, &model.PrintAreaRect{W: 1, H: 1}))
	require.NoError(t, c.Set(ctx, 7, 4, 0, &model.PrintAreaRect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}))

	assert.Equal(t, []string{"4", "product"}, sortedKeys(mr.HKeys("print_area:7")))

	product, err := c.Get(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, product.W)

	variant, err := c.Get(ctx, 7, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.5, variant.W)

	_, err = c.Get(ctx, 7, 5)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInvalidateProduct(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 7, 0, 0, &model.PrintAreaRect{W: 1, H: 1}))
	require.NoError(t, c.Set(ctx, 7, 2, 0, nil))
	require.NoError(t, c.Set(ctx, 8, 0, 0, &model.PrintAreaRect{W: 1, H: 1}))

	require.NoError(t, c.InvalidateProduct(ctx, 7))

	assert.False(t, mr.Exists("print_area:7"))
	assert.True(t, mr.Exists("print_area:8"))

	_, err := c.Get(ctx, 7, 2)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGeneration_BumpedByInvalidate(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.InvalidateProduct(ctx, 7))
	require.NoError(t, c.InvalidateProduct(ctx, 7))

	gen, err = c.Generation(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	other, err := c.Generation(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestSet_InvalidatedSinceReadIsNotWritten(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx, 7)
	require.NoError(t, err)

	// an admin replaces the area while the reader is still resolving
	require.NoError(t, c.InvalidateProduct(ctx, 7))

	err = c.Set(ctx, 7, 0, gen, &model.PrintAreaRect{W: 1, H: 1})
	assert.ErrorIs(t, err, ErrStaleGeneration)
	assert.False(t, mr.Exists("print_area:7"))

	_, err = c.Get(ctx, 7, 0)
	assert.ErrorIs(t, err, ErrCacheMiss)

	gen, err = c.Generation(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, 7, 0, gen, &model.PrintAreaRect{X: 0.1, Y: 0.1, W: 0.5, H: 0.5}))

	got, err := c.Get(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.W)
}

func TestGet_InvalidJSON(t *testing.T) {
	c, mr := setupTestRedis(t)

	mr.HSet("print_area:9", "product", "{broken")

	got, err := c.Get(context.Background(), 9, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestGet_RedisDown(t *testing.T) {
	c, mr := setupTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), 1, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func sortedKeys(keys []string, _ error) []string {
	sort.Strings(keys)
	return keys
}
