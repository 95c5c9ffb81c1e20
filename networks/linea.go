package networks

var LineaMainnet Network = NewLineaMainnet()

func NewLineaMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "linea",
		AlternativeNames:  []string{},
		ChainID:           59144,
		NativeTokenSymbol: "ETH",
		NodeVariableName:  "LINEA_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"infura-linea": "https://linea-mainnet.infura.io/v3/1556a477007b49cda01f9f3df4d97edd",
		},
		PricePlatformID: "linea",
	})
}
