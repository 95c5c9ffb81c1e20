package networks

var ArbitrumMainnet Network = NewArbitrumMainnet()

func NewArbitrumMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "arbi",
		AlternativeNames:  []string{"arbitrum"},
		ChainID:           42161,
		NativeTokenSymbol: "ETH",
		NodeVariableName:  "ARBITRUM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"arbitrum": "https://arb1.arbitrum.io/rpc",
		},
		PricePlatformID: "arbitrum-one",
	})
}
