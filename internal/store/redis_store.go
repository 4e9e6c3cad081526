package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record as a redis hash. T must carry `redis` struct
// tags on its fields.
type RedisStore[T any] struct {
	rdb       redis.UniversalClient
	keyPrefix string
}

func (s *RedisStore[T]) Get(ctx context.Context, key string) (*T, error) {
	cmd := s.rdb.HGetAll(ctx, s.keyPrefix+key)
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	if len(cmd.Val()) == 0 {
		return nil, ErrNotFound
	}
	var obj T
	if err := cmd.Scan(&obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Set replaces the hash and its expiry in one transaction. Fields absent
// from val do not survive from a previous record.
func (s *RedisStore[T]) Set(ctx context.Context, key string, val T, expiresIn time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.keyPrefix+key)
	pipe.HSet(ctx, s.keyPrefix+key, val)
	if expiresIn > 0 {
		pipe.Expire(ctx, s.keyPrefix+key, expiresIn)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore[T]) Save(ctx context.Context, key string, val T) error {
	return s.Set(ctx, key, val, 0)
}

func (s *RedisStore[T]) Del(ctx context.Context, key string) error {
	err := s.rdb.Del(ctx, s.keyPrefix+key).Err()
	return err
}

func NewRedisStore[T any](db redis.UniversalClient, keyPrefix string) *RedisStore[T] {
	return &RedisStore[T]{
		rdb:       db,
		keyPrefix: keyPrefix,
	}
}
