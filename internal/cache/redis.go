package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrintAreaTTL = 10 * time.Minute
	productLevelField   = "product"
	noAreaValue         = "none"
)

type RedisPrintAreaCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPrintAreaCache keeps one hash per product so a write to any of the
// product's areas drops every resolution cached for it.
func NewRedisPrintAreaCache(client *redis.Client, ttl time.Duration) *RedisPrintAreaCache {
	if ttl <= 0 {
		ttl = defaultPrintAreaTTL
	}
	return &RedisPrintAreaCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisPrintAreaCache) Get(ctx context.Context, productID, variantID uint) (*model.PrintAreaRect, error) {
	data, err := r.client.HGet(ctx, printAreaKey(productID), variantField(variantID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget failed: %w", err)
	}
	if data == noAreaValue {
		return nil, nil
	}

	var rect model.PrintAreaRect
	if err := json.Unmarshal([]byte(data), &rect); err != nil {
		return nil, fmt.Errorf("unmarshal print area failed: %w", err)
	}
	return &rect, nil
}

func (r *RedisPrintAreaCache) Generation(ctx context.Context, productID uint) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey(productID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// Set writes the resolution only while the product is still at generation.
func (r *RedisPrintAreaCache) Set(ctx context.Context, productID, variantID uint, generation int64, area *model.PrintAreaRect) error {
	value := noAreaValue
	if area != nil {
		b, err := json.Marshal(area)
		if err != nil {
			return fmt.Errorf("marshal print area failed: %w", err)
		}
		value = string(b)
	}

	key := printAreaKey(productID)
	genKey := generationKey(productID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, variantField(variantID), value)
			pipe.Expire(ctx, key, r.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return ErrStaleGeneration
	default:
		return fmt.Errorf("redis hset failed: %w", err)
	}
}

// InvalidateProduct bumps the generation and drops every cached resolution.
func (r *RedisPrintAreaCache) InvalidateProduct(ctx context.Context, productID uint) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, generationKey(productID))
	pipe.Del(ctx, printAreaKey(productID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

func printAreaKey(productID uint) string {
	return fmt.Sprintf("print_area:%d", productID)
}

func generationKey(productID uint) string {
	return fmt.Sprintf("print_area_gen:%d", productID)
}

func variantField(variantID uint) string {
	if variantID == 0 {
		return productLevelField
	}
	return strconv.FormatUint(uint64(variantID), 10)
}
