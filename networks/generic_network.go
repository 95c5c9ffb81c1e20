package networks

import (
	"encoding/json"
)

type GenericNetworkConfig struct {
	Name              string            `json:"name"`
	AlternativeNames  []string          `json:"alternative_names"`
	ChainID           uint64            `json:"chain_id"`
	NativeTokenSymbol string            `json:"native_token_symbol"`
	NodeVariableName  string            `json:"node_variable_name"`
	DefaultNodes      map[string]string `json:"default_nodes"`
	PricePlatformID   string            `json:"price_platform_id"`
}

// GenericNetwork is a network fully described by its config. All built-in
// networks and the custom ones loaded from json are GenericNetworks.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) GetPricePlatformID() string {
	return gn.config.PricePlatformID
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(gn.config, "", "  ")
}
