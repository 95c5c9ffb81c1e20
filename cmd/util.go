package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/config"
	"github.com/tranvictor/tokenlens/report"
	"github.com/tranvictor/tokenlens/util/browser"
	"github.com/tranvictor/tokenlens/util/cache"
	"github.com/tranvictor/tokenlens/util/capture"
	"github.com/tranvictor/tokenlens/util/chain"
	"github.com/tranvictor/tokenlens/util/market"
)

const marketKeyPrefix = "tokenlens:market:"

func newCapturer(c *config.Config, l *zap.Logger) (*capture.Capturer, func(), error) {
	store, err := cache.NewFileStore(c.CacheDir, ".png", c.Capture.ImageTTL)
	if err != nil {
		return nil, nil, err
	}
	l.Debug("image cache", zap.String("dir", store.Dir()))
	launcher := browser.NewRodLauncher(c.Browser, l)
	capturer := capture.NewCapturer(
		c.Capture,
		launcher,
		cache.New(store, cache.WithLogger(l)),
		capture.WithLogger(l),
	)
	return capturer, func() {
		if err := launcher.Shutdown(); err != nil {
			l.Warn("closing browser failed", zap.Error(err))
		}
	}, nil
}

func newMarketResolver(c *config.Config, l *zap.Logger) (*market.Resolver, func(), error) {
	var store cache.Store
	cleanup := func() {}
	switch c.Market.Backend {
	case market.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: c.Market.RedisAddr})
		store = cache.NewRedisStore(client, marketKeyPrefix)
		cleanup = func() { client.Close() }
	default:
		ms, err := cache.NewMemoryStore(c.Market.MemorySize)
		if err != nil {
			return nil, nil, err
		}
		store = ms
	}
	source := market.NewCoinGecko(c.Market.BaseURL, c.Market.APIKey, c.Market.Timeout)
	resolver := market.NewResolver(
		source,
		cache.New(store, cache.WithLogger(l)),
		c.Market.TTL,
		market.WithLogger(l),
	)
	return resolver, cleanup, nil
}

func newChainResolver(c *config.Config, l *zap.Logger) (*chain.Resolver, func()) {
	validator := chain.NewNodeValidator(c.Chain.ProbeTimeout, nil)
	return chain.NewResolver(validator, chain.WithLogger(l)), validator.Close
}

func newReportService(c *config.Config, l *zap.Logger) (*report.Service, func(), error) {
	capturer, closeBrowser, err := newCapturer(c, l)
	if err != nil {
		return nil, nil, err
	}
	resolver, closeMarket, err := newMarketResolver(c, l)
	if err != nil {
		closeBrowser()
		return nil, nil, err
	}
	candidates, def, err := candidateNetworks()
	if err != nil {
		closeBrowser()
		closeMarket()
		return nil, nil, err
	}
	chainResolver, closeChain := newChainResolver(c, l)
	s := report.NewService(
		capturer,
		chainResolver,
		resolver,
		candidates,
		def,
		report.WithLogger(l),
	)
	return s, func() {
		closeBrowser()
		closeMarket()
		closeChain()
	}, nil
}

// detectIfEmpty returns networkID or, when it is empty, the network the
// contract is detected on.
func detectIfEmpty(ctx context.Context, address, networkID string) (string, error) {
	if networkID != "" {
		return networkID, nil
	}
	candidates, def, err := candidateNetworks()
	if err != nil {
		return "", err
	}
	resolver, closeChain := newChainResolver(cfg, logger)
	defer closeChain()
	stop := u.Spinner(fmt.Sprintf("Detecting network of %s...", common.ShortAddress(address)))
	defer stop()
	return resolver.Resolve(ctx, address, candidates, def)
}

// imagePath is the -o flag or "<network>_<address>.png" in the working
// directory.
func imagePath(address, networkID string) string {
	if config.OutputFile != "" {
		return config.OutputFile
	}
	req := common.CaptureRequest{Address: address, NetworkID: networkID}
	return req.CacheKey() + ".png"
}

func writeImage(path string, img []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, img, 0644)
}

func addOutputFlag(c *cobra.Command) {
	c.Flags().StringVarP(&config.OutputFile, "output", "o", "", "where to write the holder map png. Default: <network>_<address>.png")
}
