package networks

var OptimismMainnet Network = NewOptimismMainnet()

func NewOptimismMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "op",
		AlternativeNames:  []string{"optimism"},
		ChainID:           10,
		NativeTokenSymbol: "ETH",
		NodeVariableName:  "OPTIMISM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"mainnet-optimism": "https://mainnet.optimism.io",
		},
		PricePlatformID: "optimistic-ethereum",
	})
}
