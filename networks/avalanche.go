package networks

var Avalanche Network = NewAvalanche()

func NewAvalanche() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "avax",
		AlternativeNames:  []string{"avalanche", "snowtrace"},
		ChainID:           43114,
		NativeTokenSymbol: "AVAX",
		NodeVariableName:  "AVALANCHE_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"avalanche": "https://api.avax.network/ext/bc/C/rpc",
		},
		PricePlatformID: "avalanche",
	})
}
