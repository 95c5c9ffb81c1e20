package networks

var Matic Network = NewMatic()

func NewMatic() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "poly",
		AlternativeNames:  []string{"matic", "polygon"},
		ChainID:           137,
		NativeTokenSymbol: "MATIC",
		NodeVariableName:  "MATIC_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"infura":  "https://polygon-mainnet.infura.io/v3/683ba91d845e4bf2853828c85fd7145b",
			"polygon": "https://polygon-rpc.com",
		},
		PricePlatformID: "polygon-pos",
	})
}
