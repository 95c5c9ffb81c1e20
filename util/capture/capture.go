// Package capture produces holder map images. A capture never fails because
// of the upstream page: fresh cache entries are served as is, live captures
// are retried with exponential backoff, and when every attempt failed a
// generic fallback image is returned instead.
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/util/browser"
	"github.com/tranvictor/tokenlens/util/cache"
)

type Config struct {
	// URLTemplate is the holder map page, {network} and {address} are
	// substituted.
	URLTemplate       string        `yaml:"url_template"`
	Attempts          int           `yaml:"attempts"`
	BaseDelay         time.Duration `yaml:"base_delay"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	ImageTTL          time.Duration `yaml:"image_ttl"`
	ViewportWidth     int           `yaml:"viewport_width"`
	ViewportHeight    int           `yaml:"viewport_height"`
}

func DefaultConfig() Config {
	return Config{
		URLTemplate:       "https://app.bubblemaps.io/{network}/token/{address}",
		Attempts:          3,
		BaseDelay:         2 * time.Second,
		SettleDelay:       5 * time.Second,
		NavigationTimeout: 30 * time.Second,
		ImageTTL:          time.Hour,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
	}
}

// Backoff is the wait after the failed attempt n (1 based): base * 2^(n-1).
func Backoff(base time.Duration, n int) time.Duration {
	if n < 1 {
		n = 1
	}
	return base << (n - 1)
}

type Capturer struct {
	cfg        Config
	launcher   browser.Launcher
	cache      *cache.Cache
	dismissers []Dismisser
	sleep      func(ctx context.Context, d time.Duration) error
	l          *zap.Logger

	// fallback is the generic fallback image, produced at most once per
	// process
	fallbackMu sync.Mutex
	fallback   []byte
}

type Option func(*Capturer)

func WithLogger(l *zap.Logger) Option {
	return func(c *Capturer) {
		if l != nil {
			c.l = l
		}
	}
}

// WithDismissers replaces the default overlay dismissal strategies.
func WithDismissers(ds ...Dismisser) Option {
	return func(c *Capturer) {
		c.dismissers = ds
	}
}

// WithSleep replaces the function used for settle and backoff waits.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Capturer) {
		c.sleep = sleep
	}
}

func NewCapturer(cfg Config, launcher browser.Launcher, c *cache.Cache, opts ...Option) *Capturer {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	res := &Capturer{
		cfg:        cfg,
		launcher:   launcher,
		cache:      c,
		dismissers: DefaultDismissers(),
		sleep:      sleepCtx,
		l:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// PageURL is the holder map page of req.
func (c *Capturer) PageURL(req common.CaptureRequest) string {
	return strings.NewReplacer(
		"{network}", req.NetworkID,
		"{address}", req.Address,
	).Replace(c.cfg.URLTemplate)
}

// Capture returns the holder map image of address on networkID. The only
// errors are for invalid arguments; upstream failures end up in a fallback
// image.
func (c *Capturer) Capture(ctx context.Context, address, networkID string) (common.CaptureResult, error) {
	if strings.TrimSpace(networkID) == "" {
		return common.CaptureResult{}, fmt.Errorf("%w: empty network id", common.ErrInvalidNetwork)
	}
	if err := common.ValidateAddress(address); err != nil {
		return common.CaptureResult{}, err
	}
	req := common.CaptureRequest{Address: strings.TrimSpace(address), NetworkID: networkID}
	key := req.CacheKey()
	l := c.l.With(zap.String("network", networkID), zap.String("address", req.Address))

	if entry, ok := c.cache.Get(ctx, key); ok {
		l.Debug("holder map served from cache")
		return common.CaptureResult{Image: entry.Payload, Origin: common.OriginCache}, nil
	}

	url := c.PageURL(req)
	var lastErr error
	for attempt := 1; attempt <= c.cfg.Attempts; attempt++ {
		img, err := c.attempt(ctx, url, l.With(zap.Int("attempt", attempt)))
		if err == nil {
			c.store(ctx, key, img, c.cfg.ImageTTL, l)
			l.Info("holder map captured", zap.Int("attempt", attempt), zap.Int("bytes", len(img)))
			return common.CaptureResult{Image: img, Origin: common.OriginLive}, nil
		}
		lastErr = err
		l.Warn("capture attempt failed", zap.Int("attempt", attempt), zap.Error(err))

		if attempt == c.cfg.Attempts {
			break
		}
		if err := c.sleep(ctx, Backoff(c.cfg.BaseDelay, attempt)); err != nil {
			break
		}
	}

	l.Warn("capture attempts exhausted, using fallback image", zap.Error(lastErr))
	img := c.fallbackImage(ctx, req, l)
	c.store(ctx, key, img, c.cfg.ImageTTL, l)
	return common.CaptureResult{Image: img, Origin: common.OriginFallback}, nil
}

// attempt runs one live capture in its own browser session. The session is
// closed on every path, panics included.
func (c *Capturer) attempt(ctx context.Context, url string, l *zap.Logger) (img []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("capture panicked: %v", r)
		}
	}()

	s, err := c.launcher.OpenSession(ctx, c.sessionOptions())
	if err != nil {
		return nil, fmt.Errorf("open browser session: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			l.Debug("closing browser session failed", zap.String("session", s.ID()), zap.Error(cerr))
		}
	}()

	if err := s.Navigate(ctx, url, c.cfg.NavigationTimeout); err != nil {
		// the page may be partially rendered, give it a chance
		l.Info("navigation did not complete", zap.String("url", url), zap.Error(err))
	}
	if err := c.sleep(ctx, c.cfg.SettleDelay); err != nil {
		return nil, err
	}
	c.dismissOverlays(ctx, s, l)

	img, err = s.Screenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	if len(img) == 0 {
		return nil, errors.New("screenshot: empty image")
	}
	return img, nil
}

// dismissOverlays runs every strategy in order. Overlays can come back after
// being removed, so a strategy that acted doesn't stop the next ones.
func (c *Capturer) dismissOverlays(ctx context.Context, s browser.Session, l *zap.Logger) {
	for _, d := range c.dismissers {
		acted, err := d.Run(ctx, s)
		if err != nil {
			l.Debug("overlay dismissal failed", zap.String("strategy", d.Name), zap.Error(err))
			continue
		}
		l.Debug("overlay dismissal ran", zap.String("strategy", d.Name), zap.Bool("acted", acted))
	}
}

func (c *Capturer) sessionOptions() browser.Options {
	return browser.Options{
		ViewportWidth:  c.cfg.ViewportWidth,
		ViewportHeight: c.cfg.ViewportHeight,
	}
}

// store writes img under key. Nothing is written once ctx is done.
func (c *Capturer) store(ctx context.Context, key string, img []byte, ttl time.Duration, l *zap.Logger) {
	if ctx.Err() != nil {
		return
	}
	if err := c.cache.Put(ctx, key, img, ttl); err != nil {
		l.Warn("couldn't cache image", zap.String("key", key), zap.Error(err))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
