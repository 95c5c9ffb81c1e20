// Package chain finds out which network a contract address lives on.
package chain

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/tokenlens/common"
)

// Validator answers whether address is a contract on networkID.
type Validator interface {
	Validate(ctx context.Context, address, networkID string) (bool, error)
}

// ProbeResult is the outcome of probing one candidate network.
type ProbeResult struct {
	NetworkID string
	Valid     bool
}

type Resolver struct {
	validator Validator
	l         *zap.Logger
}

type ResolverOption func(*Resolver)

func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.l = l
		}
	}
}

func NewResolver(v Validator, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		validator: v,
		l:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve probes every candidate concurrently, waits for all of them and
// returns the first valid candidate in declared order. When none is valid
// it returns defaultNetworkID. Probe errors count as not valid.
func (r *Resolver) Resolve(ctx context.Context, address string, candidates []string, defaultNetworkID string) (string, error) {
	if err := common.ValidateAddress(address); err != nil {
		return "", err
	}
	results := r.Probe(ctx, address, candidates)
	for _, res := range results {
		if res.Valid {
			r.l.Debug("network detected",
				zap.String("address", address),
				zap.String("network", res.NetworkID),
			)
			return res.NetworkID, nil
		}
	}
	r.l.Info("no candidate network validated, using default",
		zap.String("address", address),
		zap.String("network", defaultNetworkID),
	)
	return defaultNetworkID, nil
}

// Probe runs one validation per candidate and returns the results in the
// order of candidates, regardless of the order the probes finished in.
func (r *Resolver) Probe(ctx context.Context, address string, candidates []string) []ProbeResult {
	results := make([]ProbeResult, len(candidates))
	g := errgroup.Group{}
	for i, networkID := range candidates {
		g.Go(func() error {
			valid, err := r.validator.Validate(ctx, address, networkID)
			if err != nil {
				r.l.Warn("network probe failed",
					zap.String("address", address),
					zap.String("network", networkID),
					zap.Error(err),
				)
				valid = false
			}
			results[i] = ProbeResult{NetworkID: networkID, Valid: valid}
			return nil
		})
	}
	g.Wait()
	return results
}
