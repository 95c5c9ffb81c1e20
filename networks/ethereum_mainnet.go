package networks

var EthereumMainnet Network = NewEthereumMainnet()

func NewEthereumMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "eth",
		AlternativeNames:  []string{"mainnet", "ethereum"},
		ChainID:           1,
		NativeTokenSymbol: "ETH",
		NodeVariableName:  "ETHEREUM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"mainnet-infura":   "https://mainnet.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
			"mainnet-llamarpc": "https://eth.llamarpc.com",
		},
		PricePlatformID: "ethereum",
	})
}
