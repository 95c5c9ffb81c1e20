package networks

var PolygonZkevmMainnet Network = NewPolygonZkevmMainnet()

func NewPolygonZkevmMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "zkevm",
		AlternativeNames:  []string{"polygon-zkevm"},
		ChainID:           1101,
		NativeTokenSymbol: "ETH",
		NodeVariableName:  "POLYGON_ZKEVM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"public-polygonZkevm": "https://zkevm-rpc.com",
		},
		PricePlatformID: "polygon-zkevm",
	})
}
