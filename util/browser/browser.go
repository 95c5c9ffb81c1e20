// Package browser is the headless browser capability the capture pipeline
// depends on. Launcher hands out short lived Sessions, one isolated page
// each; a Session must be closed by whoever opened it.
package browser

import (
	"context"
	"time"
)

// Options configures a new session.
type Options struct {
	ViewportWidth  int
	ViewportHeight int
}

type Session interface {
	ID() string
	// Navigate loads url and waits for the load event, up to timeout. On
	// error the page may still be partially rendered.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// Eval runs a js function expression in the page and returns its
	// boolean result.
	Eval(ctx context.Context, js string) (bool, error)
	PressEscape(ctx context.Context) error
	// Screenshot captures the current viewport as png.
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

type Launcher interface {
	OpenSession(ctx context.Context, opts Options) (Session, error)
}
