package networks

var BSCMainnet Network = NewBSCMainnet()

func NewBSCMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "bsc",
		AlternativeNames:  []string{"binance"},
		ChainID:           56,
		NativeTokenSymbol: "BNB",
		NodeVariableName:  "BSC_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"binance":  "https://bsc-dataseed.binance.org",
			"defibit":  "https://bsc-dataseed1.defibit.io",
			"ninicoin": "https://bsc-dataseed1.ninicoin.io",
		},
		PricePlatformID: "binance-smart-chain",
	})
}
