package networks

var BaseMainnet Network = NewBaseMainnet()

func NewBaseMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "base",
		AlternativeNames:  []string{},
		ChainID:           8453,
		NativeTokenSymbol: "ETH",
		NodeVariableName:  "BASE_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"public-base": "https://mainnet.base.org",
		},
		PricePlatformID: "base",
	})
}
