// Package report composes the three resolvers into the token report the
// chat layer renders: network, holder map image and market data.
package report

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/tokenlens/common"
)

type Capturer interface {
	Capture(ctx context.Context, address, networkID string) (common.CaptureResult, error)
}

type NetworkResolver interface {
	Resolve(ctx context.Context, address string, candidates []string, defaultNetworkID string) (string, error)
}

type MarketResolver interface {
	Resolve(ctx context.Context, address, networkID string) (*common.MarketData, error)
}

type Report struct {
	Address   string
	NetworkID string
	// Detected is true when the network was picked by probing.
	Detected bool
	Image    common.CaptureResult
	// Market is nil when market data is unavailable.
	Market  *common.MarketData
	Elapsed time.Duration
}

type Service struct {
	capturer   Capturer
	chain      NetworkResolver
	market     MarketResolver
	candidates []string
	defaultNet string
	l          *zap.Logger
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.l = l
		}
	}
}

func NewService(
	capturer Capturer,
	chain NetworkResolver,
	market MarketResolver,
	candidates []string,
	defaultNetworkID string,
	opts ...Option,
) *Service {
	s := &Service{
		capturer:   capturer,
		chain:      chain,
		market:     market,
		candidates: candidates,
		defaultNet: defaultNetworkID,
		l:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build resolves everything the report of address needs. When networkID is
// empty the network is detected first. The image and the market data are
// then fetched concurrently.
func (s *Service) Build(ctx context.Context, address, networkID string) (*Report, error) {
	if err := common.ValidateAddress(address); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Report{
		Address:   address,
		NetworkID: networkID,
	}
	if networkID == "" {
		detected, err := s.chain.Resolve(ctx, address, s.candidates, s.defaultNet)
		if err != nil {
			return nil, err
		}
		res.NetworkID = detected
		res.Detected = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := s.capturer.Capture(gctx, address, res.NetworkID)
		if err != nil {
			return err
		}
		res.Image = img
		return nil
	})
	g.Go(func() error {
		data, err := s.market.Resolve(gctx, address, res.NetworkID)
		if err != nil {
			return err
		}
		res.Market = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)
	s.l.Info("report built",
		zap.String("address", address),
		zap.String("network", res.NetworkID),
		zap.Bool("detected", res.Detected),
		zap.String("image_origin", string(res.Image.Origin)),
		zap.Bool("market_data", res.Market != nil),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
