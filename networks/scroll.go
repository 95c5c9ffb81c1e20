package networks

var ScrollMainnet Network = NewScrollMainnet()

func NewScrollMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "scroll",
		AlternativeNames:  []string{},
		ChainID:           534352,
		NativeTokenSymbol: "ETH",
		NodeVariableName:  "SCROLL_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"public-scroll": "https://rpc.scroll.io",
		},
		PricePlatformID: "scroll",
	})
}
