package kvstore

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// CacheStore adapts go-cache to the Store interface. It is the client-local
// synchronous tier: durable across a reload of the same session, volatile
// across processes.
type CacheStore struct {
	cache *cache.Cache
}

func NewCacheStore() *CacheStore {
	return &CacheStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *CacheStore) Get(_ context.Context, key string) ([]byte, error) {
	if x, found := s.cache.Get(key); found {
		return x.([]byte), nil
	}
	return nil, nil
}

func (s *CacheStore) Set(_ context.Context, key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	s.cache.Set(key, buf, cache.NoExpiration)
	return nil
}

func (s *CacheStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
