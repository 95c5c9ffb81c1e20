package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"go.uber.org/zap"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/util/cache"
)

// FallbackKey is the cache key of the generic fallback image. It can't
// collide with "<network>_<address>" keys.
const FallbackKey = "generic_fallback"

var fallbackPage = template.Must(template.New("fallback").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
	html, body { margin: 0; height: 100%; background: #0f1021; color: #e6e6f0;
		font-family: -apple-system, "Segoe UI", Roboto, sans-serif; }
	.box { height: 100%; display: flex; flex-direction: column;
		align-items: center; justify-content: center; gap: 16px; }
	h1 { font-size: 48px; margin: 0; }
	.addr { font-family: monospace; font-size: 28px; color: #9fa3ff; }
	.net { font-size: 24px; text-transform: uppercase; letter-spacing: 4px; }
	.hint { font-size: 20px; color: #8a8aa0; }
</style>
</head>
<body>
<div class="box">
	<h1>Holder map unavailable</h1>
	<div class="net">{{.Network}}</div>
	<div class="addr">{{.Address}}</div>
	<div class="hint">The map could not be rendered right now, try again later.</div>
</div>
</body>
</html>`))

// fallbackImage returns the generic fallback image, producing it on first
// use: from the cache if an earlier process made one, else by rendering the
// fallback page. Callers wait for each other so it is rendered only once.
func (c *Capturer) fallbackImage(ctx context.Context, req common.CaptureRequest, l *zap.Logger) []byte {
	c.fallbackMu.Lock()
	defer c.fallbackMu.Unlock()

	if c.fallback != nil {
		return c.fallback
	}
	if entry, ok := c.cache.Get(ctx, FallbackKey); ok {
		c.fallback = entry.Payload
		return c.fallback
	}

	img, err := c.renderFallback(ctx, req, l)
	if err != nil {
		// not memoized, a healthy browser later can still render the page
		l.Warn("couldn't render fallback page, using static placeholder", zap.Error(err))
		return placeholderPNG(c.cfg.ViewportWidth, c.cfg.ViewportHeight)
	}
	c.fallback = img
	c.store(ctx, FallbackKey, img, cache.Forever, l)
	return img
}

func (c *Capturer) renderFallback(ctx context.Context, req common.CaptureRequest, l *zap.Logger) (img []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("fallback render panicked: %v", r)
		}
	}()

	html := bytes.Buffer{}
	err = fallbackPage.Execute(&html, struct {
		Network string
		Address string
	}{
		Network: req.NetworkID,
		Address: req.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("render fallback template: %w", err)
	}

	s, err := c.launcher.OpenSession(ctx, c.sessionOptions())
	if err != nil {
		return nil, fmt.Errorf("open browser session: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			l.Debug("closing browser session failed", zap.String("session", s.ID()), zap.Error(cerr))
		}
	}()

	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html.Bytes())
	if err := s.Navigate(ctx, url, c.cfg.NavigationTimeout); err != nil {
		return nil, fmt.Errorf("load fallback page: %w", err)
	}
	img, err = s.Screenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("screenshot fallback page: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("screenshot fallback page: empty image")
	}
	return img, nil
}

// placeholderPNG draws a plain dark image with a lighter band, used when
// not even the fallback page could be rendered.
func placeholderPNG(width, height int) []byte {
	if width <= 0 || height <= 0 {
		width, height = 640, 360
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{0x0f, 0x10, 0x21, 0xff}}, image.Point{}, draw.Src)
	band := image.Rect(0, height*2/5, width, height*3/5)
	draw.Draw(img, band, &image.Uniform{C: color.RGBA{0x2a, 0x2c, 0x55, 0xff}}, image.Point{}, draw.Src)

	buf := bytes.Buffer{}
	// encoding an in-memory RGBA into a buffer can't fail
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
