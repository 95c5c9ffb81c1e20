// Package market resolves price and market statistics of a token from a
// price catalog, memoizing results for a short while.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/networks"
	"github.com/tranvictor/tokenlens/util/cache"
)

type Config struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	TTL        time.Duration `yaml:"ttl"`
	Timeout    time.Duration `yaml:"timeout"`
	Backend    string        `yaml:"backend"`
	MemorySize int           `yaml:"memory_size"`
	RedisAddr  string        `yaml:"redis_addr"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultCoinGeckoURL,
		TTL:        10 * time.Minute,
		Timeout:    10 * time.Second,
		Backend:    BackendMemory,
		MemorySize: 1024,
	}
}

// PlatformFunc maps a network id to the price catalog platform id. An empty
// platform or an error means the network isn't listed on the catalog.
type PlatformFunc func(networkID string) (string, error)

// RegistryPlatform reads the platform id from the network registry.
func RegistryPlatform(networkID string) (string, error) {
	n, err := networks.GetNetwork(networkID)
	if err != nil {
		return "", err
	}
	return n.GetPricePlatformID(), nil
}

type Resolver struct {
	source   PriceSource
	cache    *cache.Cache
	ttl      time.Duration
	platform PlatformFunc
	l        *zap.Logger
}

type ResolverOption func(*Resolver)

func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.l = l
		}
	}
}

func WithPlatforms(f PlatformFunc) ResolverOption {
	return func(r *Resolver) {
		r.platform = f
	}
}

func NewResolver(source PriceSource, c *cache.Cache, ttl time.Duration, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:   source,
		cache:    c,
		ttl:      ttl,
		platform: RegistryPlatform,
		l:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CacheKey is "<platform>_<lowercased address>".
func CacheKey(platform, address string) string {
	return platform + "_" + common.NormalizeAddress(address)
}

// Resolve returns the market data of address on networkID or nil when it is
// unavailable for any reason. Errors are only returned for invalid input.
func (r *Resolver) Resolve(ctx context.Context, address, networkID string) (*common.MarketData, error) {
	if err := common.ValidateAddress(address); err != nil {
		return nil, err
	}
	if networkID == "" {
		return nil, fmt.Errorf("%w: empty network", common.ErrInvalidNetwork)
	}
	platform, err := r.platform(networkID)
	if err != nil || platform == "" {
		r.l.Debug("network has no price platform", zap.String("network", networkID), zap.Error(err))
		return nil, nil
	}

	key := CacheKey(platform, address)
	if entry, found := r.cache.Get(ctx, key); found {
		data := common.MarketData{}
		if err := json.Unmarshal(entry.Payload, &data); err == nil {
			return &data, nil
		}
		r.l.Warn("dropping undecodable market data cache entry", zap.String("key", key))
	}

	log := r.l.With(zap.String("address", address), zap.String("platform", platform))
	id, err := r.source.LookupCatalogID(ctx, address, platform)
	if errors.Is(err, ErrNotFound) {
		log.Debug("token is not listed")
		return nil, nil
	}
	if err != nil {
		log.Warn("catalog id lookup failed", zap.Error(err))
		return nil, nil
	}

	data, err := r.source.FetchSnapshot(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("market snapshot fetch failed", zap.String("id", id), zap.Error(err))
		}
		return nil, nil
	}
	if data == nil {
		log.Info("token has no market data", zap.String("id", id))
		return nil, nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return data, nil
	}
	if ctx.Err() == nil {
		if err := r.cache.Put(ctx, key, payload, r.ttl); err != nil {
			log.Warn("caching market data failed", zap.Error(err))
		}
	}
	return data, nil
}
