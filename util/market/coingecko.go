package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tranvictor/tokenlens/common"
)

const (
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	apiKeyHeader        = "x-cg-pro-api-key"
)

// ErrNotFound is returned by a PriceSource when the upstream doesn't know
// the token. It is a normal outcome for fresh or obscure tokens.
var ErrNotFound = errors.New("token not found")

// PriceSource is the upstream market data catalog.
type PriceSource interface {
	// LookupCatalogID maps a contract address on a platform to the
	// catalog's own token id.
	LookupCatalogID(ctx context.Context, address, platform string) (string, error)
	// FetchSnapshot returns the current market data of a catalog id, or
	// nil when the catalog has no market data for it.
	FetchSnapshot(ctx context.Context, id string) (*common.MarketData, error)
}

type CoinGecko struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewCoinGecko(baseURL, apiKey string, timeout time.Duration) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	return &CoinGecko{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (cg *CoinGecko) ContractURL(address, platform string) string {
	return fmt.Sprintf(
		"%s/coins/%s/contract/%s",
		cg.BaseURL,
		url.PathEscape(platform),
		url.PathEscape(strings.ToLower(address)),
	)
}

func (cg *CoinGecko) CoinURL(id string) string {
	return fmt.Sprintf(
		"%s/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false",
		cg.BaseURL,
		url.PathEscape(id),
	)
}

func (cg *CoinGecko) get(ctx context.Context, u string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if cg.APIKey != "" {
		req.Header.Set(apiKeyHeader, cg.APIKey)
	}
	resp, err := cg.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s responded %d: %s", u, resp.StatusCode, truncate(string(body), 200))
	}
	if err = json.Unmarshal(body, result); err != nil {
		return fmt.Errorf(
			"couldn't unmarshal %s, err: %w",
			truncate(string(body), 200),
			err,
		)
	}
	return nil
}

type contractResponse struct {
	ID string `json:"id"`
}

func (cg *CoinGecko) LookupCatalogID(ctx context.Context, address, platform string) (string, error) {
	res := contractResponse{}
	if err := cg.get(ctx, cg.ContractURL(address, platform), &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", ErrNotFound
	}
	return res.ID, nil
}

type usdAmount struct {
	USD float64 `json:"usd"`
}

type coinResponse struct {
	ID         string `json:"id"`
	MarketData *struct {
		CurrentPrice             usdAmount `json:"current_price"`
		PriceChangePercentage24h float64   `json:"price_change_percentage_24h"`
		MarketCap                usdAmount `json:"market_cap"`
		TotalVolume              usdAmount `json:"total_volume"`
	} `json:"market_data"`
}

func (cg *CoinGecko) FetchSnapshot(ctx context.Context, id string) (*common.MarketData, error) {
	res := coinResponse{}
	if err := cg.get(ctx, cg.CoinURL(id), &res); err != nil {
		return nil, err
	}
	if res.MarketData == nil {
		return nil, nil
	}
	return &common.MarketData{
		Price:     res.MarketData.CurrentPrice.USD,
		Change24h: res.MarketData.PriceChangePercentage24h,
		MarketCap: res.MarketData.MarketCap.USD,
		Volume24h: res.MarketData.TotalVolume.USD,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
