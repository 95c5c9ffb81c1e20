package report

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/util/cache"
	"github.com/tranvictor/tokenlens/util/market"
)

const token = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

type fakeCapturer struct {
	network string
	err     error
}

func (f *fakeCapturer) Capture(ctx context.Context, address, networkID string) (common.CaptureResult, error) {
	f.network = networkID
	return common.CaptureResult{Image: []byte("png"), Origin: common.OriginLive}, f.err
}

type fakeChain struct {
	network string
	calls   int
}

func (f *fakeChain) Resolve(ctx context.Context, address string, candidates []string, def string) (string, error) {
	f.calls++
	if f.network == "" {
		return def, nil
	}
	return f.network, nil
}

type fakeMarket struct {
	data *common.MarketData
}

func (f *fakeMarket) Resolve(ctx context.Context, address, networkID string) (*common.MarketData, error) {
	return f.data, nil
}

func TestBuildDetectsNetwork(t *testing.T) {
	capturer := &fakeCapturer{}
	chain := &fakeChain{network: "bsc"}
	market := &fakeMarket{data: &common.MarketData{Price: 1}}
	s := NewService(capturer, chain, market, []string{"eth", "bsc"}, "eth")

	r, err := s.Build(context.Background(), token, "")
	require.NoError(t, err)
	assert.Equal(t, "bsc", r.NetworkID)
	assert.True(t, r.Detected)
	assert.Equal(t, "bsc", capturer.network)
	assert.Equal(t, common.OriginLive, r.Image.Origin)
	assert.Equal(t, 1.0, r.Market.Price)
}

func TestBuildKeepsGivenNetwork(t *testing.T) {
	capturer := &fakeCapturer{}
	chain := &fakeChain{network: "bsc"}
	s := NewService(capturer, chain, &fakeMarket{}, nil, "eth")

	r, err := s.Build(context.Background(), token, "poly")
	require.NoError(t, err)
	assert.Equal(t, "poly", r.NetworkID)
	assert.False(t, r.Detected)
	assert.Zero(t, chain.calls)
	assert.Nil(t, r.Market)
}

func TestBuildErrors(t *testing.T) {
	s := NewService(&fakeCapturer{}, &fakeChain{}, &fakeMarket{}, nil, "eth")
	_, err := s.Build(context.Background(), "0xnope", "eth")
	assert.ErrorIs(t, err, common.ErrInvalidAddress)

	s = NewService(&fakeCapturer{err: common.ErrInvalidNetwork}, &fakeChain{}, &fakeMarket{}, nil, "eth")
	_, err = s.Build(context.Background(), token, "eth")
	assert.True(t, errors.Is(err, common.ErrInvalidNetwork))
}

func TestBuildUnregisteredNetworkKeepsImage(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected catalog call %s", r.URL.Path)
	}))
	defer catalog.Close()
	store, err := cache.NewMemoryStore(8)
	require.NoError(t, err)
	resolver := market.NewResolver(
		market.NewCoinGecko(catalog.URL, "", time.Second),
		cache.New(store),
		10*time.Minute,
	)
	capturer := &fakeCapturer{}
	s := NewService(capturer, &fakeChain{}, resolver, nil, "eth")

	r, err := s.Build(context.Background(), token, "sonic")
	require.NoError(t, err)
	assert.Equal(t, "sonic", capturer.network)
	assert.Equal(t, []byte("png"), r.Image.Image)
	assert.Nil(t, r.Market)
}
