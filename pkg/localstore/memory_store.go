package localstore

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is the in-process fallback used when redis is not reachable.
// Values never expire; they only outlive the process in the redis variant.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(_ context.Context, deviceID, key string) (string, bool, error) {
	if x, found := s.cache.Get(redisKey(deviceID, key)); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *MemoryStore) Set(_ context.Context, deviceID, key, value string) error {
	s.cache.Set(redisKey(deviceID, key), value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, deviceID, key string) error {
	s.cache.Delete(redisKey(deviceID, key))
	return nil
}
