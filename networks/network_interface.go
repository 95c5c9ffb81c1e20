package networks

type Network interface {
	// GetName returns the short id the bot uses for the network, e.g. "eth".
	// It is also the chain slug on the holder map page.
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	// GetPricePlatformID returns the asset platform id the price service
	// uses for this network. Empty means market data is not supported.
	GetPricePlatformID() string

	MarshalJSON() ([]byte, error)
}
