package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Omthube23/fastapi-elk-project/models"
	"github.com/patrickmn/go-cache"
)

// CachedStore serves Get from an in-memory cache in front of a slower store.
// Items are immutable, so only Delete has to invalidate. Cache fills hold mu
// shared and Delete holds it exclusively, so a fill that read the item before
// a Delete cannot land in the cache after it.
type CachedStore struct {
	mu    sync.RWMutex
	inner ItemStore
	cache *cache.Cache
}

// NewCachedStore wraps inner with a cache whose entries expire after ttl.
func NewCachedStore(inner ItemStore, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func itemCacheKey(id uint) string {
	return fmt.Sprintf("item:%d", id)
}

func (s *CachedStore) Create(ctx context.Context, in NewItem) (models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.inner.Create(ctx, in)
	if err != nil {
		return models.Item{}, err
	}
	s.cache.Set(itemCacheKey(item.ID), item, cache.DefaultExpiration)
	return item, nil
}

func (s *CachedStore) List(ctx context.Context) ([]models.Item, error) {
	return s.inner.List(ctx)
}

func (s *CachedStore) Get(ctx context.Context, id uint) (models.Item, error) {
	if cached, found := s.cache.Get(itemCacheKey(id)); found {
		if item, ok := cached.(models.Item); ok {
			return item, nil
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.inner.Get(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	s.cache.Set(itemCacheKey(id), item, cache.DefaultExpiration)
	return item, nil
}

func (s *CachedStore) Delete(ctx context.Context, id uint) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.inner.Delete(ctx, id)
	s.cache.Delete(itemCacheKey(id))
	return item, err
}

func (s *CachedStore) Close() error {
	s.cache.Flush()
	return s.inner.Close()
}
