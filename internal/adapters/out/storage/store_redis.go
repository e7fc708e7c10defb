// internal/adapters/out/storage/store_redis.go
package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
)

const redisCartKeyPrefix = "cart:"

// RedisCartStore implements cart.Store on Redis, one hash per cart key
// (field = barcode, value = qty). Hashes give the same per-key isolation
// as the blob layout without read-modify-write of unrelated carts.
type RedisCartStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisCartStore(addr string, log *zap.Logger) *RedisCartStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCartStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		log:    log,
	}
}

// NewRedisCartStoreWithClient reuses an already connected client.
func NewRedisCartStoreWithClient(client *redis.Client, log *zap.Logger) *RedisCartStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCartStore{client: client, log: log}
}

func (r *RedisCartStore) redisKey(key string) string {
	return redisCartKeyPrefix + strings.TrimSpace(key)
}

func (r *RedisCartStore) Load(ctx context.Context, key string) (cartdom.Snapshot, error) {
	if r == nil || r.client == nil {
		return nil, errors.New("redis_cart_store: client is nil")
	}

	fields, err := r.client.HGetAll(ctx, r.redisKey(key)).Result()
	if err != nil {
		return nil, err
	}

	snap := cartdom.NewSnapshot()
	for barcode, raw := range fields {
		qty, convErr := strconv.Atoi(raw)
		if convErr != nil {
			// Discard the one malformed field, keep the rest.
			r.log.Warn("cart hash field discarded",
				zap.String("cartKey", key),
				zap.String("barcode", barcode))
			continue
		}
		snap[barcode] = qty
	}
	return snap, nil
}

func (r *RedisCartStore) Save(ctx context.Context, key string, snapshot cartdom.Snapshot) error {
	if r == nil || r.client == nil {
		return errors.New("redis_cart_store: client is nil")
	}

	rk := r.redisKey(key)

	// Del + HSet in one pipeline so removed lines do not linger.
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, rk)
	if len(snapshot) > 0 {
		args := make([]any, 0, len(snapshot)*2)
		for barcode, qty := range snapshot {
			args = append(args, barcode, qty)
		}
		pipe.HSet(ctx, rk, args...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisCartStore) Delete(ctx context.Context, key string) error {
	if r == nil || r.client == nil {
		return errors.New("redis_cart_store: client is nil")
	}
	return r.client.Del(ctx, r.redisKey(key)).Err()
}

// Close releases the underlying client.
func (r *RedisCartStore) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
