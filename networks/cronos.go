package networks

var Cronos Network = NewCronos()

func NewCronos() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "cro",
		AlternativeNames:  []string{"cronos"},
		ChainID:           25,
		NativeTokenSymbol: "CRO",
		NodeVariableName:  "CRONOS_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"cronos": "https://evm.cronos.org",
		},
		PricePlatformID: "cronos",
	})
}
