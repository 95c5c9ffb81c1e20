package networks

var Fantom Network = NewFantom()

func NewFantom() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "ftm",
		AlternativeNames:  []string{"fantom"},
		ChainID:           250,
		NativeTokenSymbol: "FTM",
		NodeVariableName:  "FANTOM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"fantom": "https://rpc.ftm.tools/",
		},
		PricePlatformID: "fantom",
	})
}
