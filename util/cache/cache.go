// Package cache is the artifact cache shared by the resolvers. An entry is
// usable while it is younger than its TTL; a stale entry reads exactly like
// a missing one. Entries are replaced whole, never merged, and concurrent
// writers to the same key are last-write-wins.
package cache

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

// Forever is the TTL of entries that never go stale.
const Forever = time.Duration(math.MaxInt64)

type Entry struct {
	Key       string        `json:"key"`
	Payload   []byte        `json:"payload"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

// Fresh reports whether the entry is still usable at now.
func (e Entry) Fresh(now time.Time) bool {
	return now.Sub(e.CreatedAt) < e.TTL
}

// Store is the storage backend of a Cache. Load returns found=false when
// the key was never saved; freshness is decided by the Cache.
type Store interface {
	Load(ctx context.Context, key string) (entry Entry, found bool, err error)
	Save(ctx context.Context, entry Entry) error
}

type Cache struct {
	store Store
	now   func() time.Time
	l     *zap.Logger
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.l = l
		}
	}
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		now:   time.Now,
		l:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry of key if there is one and it is fresh. Backend
// errors are logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) (Entry, bool) {
	entry, found, err := c.store.Load(ctx, key)
	if err != nil {
		c.l.Warn("cache load failed", zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	if !found || !entry.Fresh(c.now()) {
		return Entry{}, false
	}
	return entry, true
}

// Put stores payload under key, replacing whatever was there.
func (c *Cache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.store.Save(ctx, Entry{
		Key:       key,
		Payload:   payload,
		CreatedAt: c.now(),
		TTL:       ttl,
	})
}
