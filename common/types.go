package common

// Origin tells where the bytes of a CaptureResult came from. It is only
// used for diagnostics, callers display all three the same way.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// CaptureRequest identifies one holder map capture job.
type CaptureRequest struct {
	Address   string
	NetworkID string
}

// CacheKey is the key the image is cached under: "<network>_<address>".
// Addresses are lowercased since EVM addresses are case insensitive.
func (r CaptureRequest) CacheKey() string {
	return r.NetworkID + "_" + NormalizeAddress(r.Address)
}

type CaptureResult struct {
	Image  []byte
	Origin Origin
}

// MarketData is a price snapshot of a token. A nil *MarketData means the
// data is unavailable.
type MarketData struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
	Volume24h float64 `json:"volume_24h"`
}
