package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/util/cache"
)

const token = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

const daiCoin = `{
  "id": "dai",
  "symbol": "dai",
  "market_data": {
    "current_price": {"usd": 0.9998, "eur": 0.92},
    "price_change_percentage_24h": -0.0123,
    "market_cap": {"usd": 5350000000},
    "total_volume": {"usd": 210000000.5}
  }
}`

type fakeCatalog struct {
	lookups   atomic.Int32
	snapshots atomic.Int32
	contract  func(w http.ResponseWriter, r *http.Request)
	coin      func(w http.ResponseWriter, r *http.Request)
	apiKey    atomic.Value
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.apiKey.Store(r.Header.Get(apiKeyHeader))
	switch {
	case strings.Contains(r.URL.Path, "/contract/"):
		f.lookups.Add(1)
		f.contract(w, r)
	case strings.HasPrefix(r.URL.Path, "/coins/"):
		f.snapshots.Add(1)
		f.coin(w, r)
	default:
		http.NotFound(w, r)
	}
}

func listed(id string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":%q,"symbol":"dai"}`, id)
	}
}

func body(s string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, s)
	}
}

func newTestResolver(t *testing.T, catalog *fakeCatalog) *Resolver {
	t.Helper()
	ts := httptest.NewServer(catalog)
	t.Cleanup(ts.Close)
	store, err := cache.NewMemoryStore(16)
	require.NoError(t, err)
	return NewResolver(
		NewCoinGecko(ts.URL, "secret", time.Second),
		cache.New(store),
		10*time.Minute,
	)
}

func TestResolveMemoizes(t *testing.T) {
	catalog := &fakeCatalog{contract: listed("dai"), coin: body(daiCoin)}
	r := newTestResolver(t, catalog)

	for i := 0; i < 3; i++ {
		data, err := r.Resolve(context.Background(), token, "eth")
		require.NoError(t, err)
		require.NotNil(t, data)
		assert.Equal(t, common.MarketData{
			Price:     0.9998,
			Change24h: -0.0123,
			MarketCap: 5350000000,
			Volume24h: 210000000.5,
		}, *data)
	}
	assert.EqualValues(t, 1, catalog.lookups.Load())
	assert.EqualValues(t, 1, catalog.snapshots.Load())
	assert.Equal(t, "secret", catalog.apiKey.Load())
}

func TestResolveCacheKeyIgnoresAddressCase(t *testing.T) {
	catalog := &fakeCatalog{contract: listed("dai"), coin: body(daiCoin)}
	r := newTestResolver(t, catalog)

	_, err := r.Resolve(context.Background(), token, "eth")
	require.NoError(t, err)
	data, err := r.Resolve(context.Background(), strings.ToLower(token), "ethereum")
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.EqualValues(t, 1, catalog.lookups.Load())
}

func TestResolveNotFoundIsNotCached(t *testing.T) {
	catalog := &fakeCatalog{
		contract: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
		},
		coin: body(daiCoin),
	}
	r := newTestResolver(t, catalog)

	data, err := r.Resolve(context.Background(), token, "bsc")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.EqualValues(t, 1, catalog.lookups.Load())
	assert.EqualValues(t, 0, catalog.snapshots.Load())

	// negative results are looked up again next time
	data, err = r.Resolve(context.Background(), token, "bsc")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.EqualValues(t, 2, catalog.lookups.Load())
}

func TestResolveWithoutMarketData(t *testing.T) {
	catalog := &fakeCatalog{contract: listed("newtoken"), coin: body(`{"id":"newtoken"}`)}
	r := newTestResolver(t, catalog)

	data, err := r.Resolve(context.Background(), token, "eth")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestResolveTransportErrorIsUnavailable(t *testing.T) {
	catalog := &fakeCatalog{
		contract: listed("dai"),
		coin: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		},
	}
	r := newTestResolver(t, catalog)

	data, err := r.Resolve(context.Background(), token, "eth")
	require.NoError(t, err)
	assert.Nil(t, data)

	catalog.coin = body("not json")
	data, err = r.Resolve(context.Background(), token, "eth")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.EqualValues(t, 2, catalog.snapshots.Load())
}

func TestResolveUnmappedNetworkMakesNoCall(t *testing.T) {
	catalog := &fakeCatalog{contract: listed("dai"), coin: body(daiCoin)}
	r := newTestResolver(t, catalog)
	r.platform = func(string) (string, error) { return "", nil }

	data, err := r.Resolve(context.Background(), token, "eth")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.EqualValues(t, 0, catalog.lookups.Load())
}

func TestResolveInvalidInput(t *testing.T) {
	catalog := &fakeCatalog{contract: listed("dai"), coin: body(daiCoin)}
	r := newTestResolver(t, catalog)

	_, err := r.Resolve(context.Background(), "dai", "eth")
	assert.ErrorIs(t, err, common.ErrInvalidAddress)

	_, err = r.Resolve(context.Background(), token, "")
	assert.ErrorIs(t, err, common.ErrInvalidNetwork)

	assert.EqualValues(t, 0, catalog.lookups.Load())
}

func TestResolveUnregisteredNetworkIsUnavailable(t *testing.T) {
	catalog := &fakeCatalog{contract: listed("dai"), coin: body(daiCoin)}
	r := newTestResolver(t, catalog)

	data, err := r.Resolve(context.Background(), token, "sonic")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.EqualValues(t, 0, catalog.lookups.Load())
}

func TestCoinGeckoURLs(t *testing.T) {
	cg := NewCoinGecko("https://example.com/api/v3/", "", time.Second)
	assert.Equal(t,
		"https://example.com/api/v3/coins/binance-smart-chain/contract/0x6b175474e89094c44da98b954eedeac495271d0f",
		cg.ContractURL(token, "binance-smart-chain"),
	)
	assert.True(t, strings.HasPrefix(cg.CoinURL("dai"), "https://example.com/api/v3/coins/dai?"))
	assert.Contains(t, cg.CoinURL("dai"), "market_data=true")
}
