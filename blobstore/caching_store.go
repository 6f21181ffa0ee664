package blobstore

import (
	"context"

	"github.com/hupe1980/benchy/internal/cache"
)

// DefaultCacheCapacity is the byte capacity used when NewCachingStore is given
// a non-positive capacity.
const DefaultCacheCapacity = 256 << 20

// CachingStore wraps a BlobStore and keeps the contents of recently opened
// blobs in memory. Resolving an experiment and running it reads the same
// archive twice; with a remote store the second read is served from the cache.
type CachingStore struct {
	inner BlobStore
	cache *cache.LRU
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner BlobStore, capacity int64) *CachingStore {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity),
	}
}

// Open returns the cached blob, or reads the whole blob from the inner store.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}
	data, err := ReadAll(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, data)
	return &memoryBlob{data: data}, nil
}

// Put writes through to the inner store and drops the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// List is not cached.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hits and misses.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}
