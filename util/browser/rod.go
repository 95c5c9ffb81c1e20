package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds browser configuration.
type Config struct {
	// DebuggerURL connects to an already running Chrome instead of
	// launching one.
	DebuggerURL string   `yaml:"debugger_url"`
	Bin         string   `yaml:"bin"`
	Flags       []string `yaml:"flags,omitempty"`
	Headless    bool     `yaml:"headless"`
}

// RodLauncher owns one Chrome process (or connection) and opens every
// session in its own incognito context so sessions share no state.
type RodLauncher struct {
	cfg     Config
	l       *zap.Logger
	mu      sync.Mutex
	browser *rod.Browser
}

func NewRodLauncher(cfg Config, l *zap.Logger) *RodLauncher {
	if l == nil {
		l = zap.NewNop()
	}
	return &RodLauncher{cfg: cfg, l: l}
}

// Start connects to an existing Chrome or launches a new one. It is called
// lazily by OpenSession and reconnects when the browser went away.
func (rl *RodLauncher) Start(ctx context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.startLocked(ctx)
}

func (rl *RodLauncher) startLocked(ctx context.Context) error {
	if rl.browser != nil {
		if _, err := rl.browser.Version(); err == nil {
			return nil
		}
		rl.l.Warn("stale browser connection detected, reconnecting")
		_ = rl.browser.Close()
		rl.browser = nil
	}

	controlURL := rl.cfg.DebuggerURL
	if controlURL == "" {
		url, err := rl.launcher().Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = url
	}

	// the browser outlives the ctx of the request that happened to start it
	browser := rod.New().ControlURL(controlURL).Context(context.WithoutCancel(ctx))
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	rl.browser = browser
	rl.l.Info("browser connected", zap.String("control_url", controlURL))
	return nil
}

func (rl *RodLauncher) launcher() *launcher.Launcher {
	l := launcher.New().Headless(rl.cfg.Headless)
	if rl.cfg.Bin != "" {
		l = l.Bin(rl.cfg.Bin)
	}
	for _, rawFlag := range rl.cfg.Flags {
		flagStr := strings.TrimLeft(rawFlag, "-")
		name, val, hasVal := strings.Cut(flagStr, "=")
		if hasVal {
			l = l.Set(flags.Flag(name), val)
		} else {
			l = l.Set(flags.Flag(name))
		}
	}
	return l
}

// OpenSession opens a blank page with the requested viewport.
func (rl *RodLauncher) OpenSession(ctx context.Context, opts Options) (Session, error) {
	rl.mu.Lock()
	if err := rl.startLocked(ctx); err != nil {
		rl.mu.Unlock()
		return nil, err
	}
	b := rl.browser
	rl.mu.Unlock()

	incognito, err := b.Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	err = proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.ViewportWidth,
		Height:            opts.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}.Call(page)
	if err != nil {
		_ = page.Close()
		_ = incognito.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	return &rodSession{
		id:        uuid.NewString(),
		incognito: incognito,
		page:      page,
	}, nil
}

// Shutdown closes the browser. Open sessions become unusable.
func (rl *RodLauncher) Shutdown() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.browser == nil {
		return nil
	}
	err := rl.browser.Close()
	rl.browser = nil
	return err
}

type rodSession struct {
	id        string
	incognito *rod.Browser
	page      *rod.Page
	closeOnce sync.Once
	closeErr  error
}

func (s *rodSession) ID() string {
	return s.id
}

func (s *rodSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page := s.page.Context(ctx).Timeout(timeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

func (s *rodSession) Eval(ctx context.Context, js string) (bool, error) {
	res, err := s.page.Context(ctx).Eval(js)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (s *rodSession) PressEscape(ctx context.Context) error {
	return s.page.Context(ctx).Keyboard.Press(input.Escape)
}

func (s *rodSession) Screenshot(ctx context.Context) ([]byte, error) {
	img, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, errors.New("empty screenshot")
	}
	return img, nil
}

// Close closes the page and its incognito context. Safe to call twice.
func (s *rodSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = errors.Join(s.page.Close(), s.incognito.Close())
	})
	return s.closeErr
}
