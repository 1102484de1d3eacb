package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps device-local state in redis so it survives instance
// restarts. Keys are namespaced per device; no TTL, the data lives until the
// device clears it.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(deviceID, key string) string {
	return fmt.Sprintf("local:%s:%s", deviceID, key)
}

func (s *RedisStore) Get(ctx context.Context, deviceID, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, redisKey(deviceID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, deviceID, key, value string) error {
	return s.rdb.Set(ctx, redisKey(deviceID, key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, deviceID, key string) error {
	return s.rdb.Del(ctx, redisKey(deviceID, key)).Err()
}
