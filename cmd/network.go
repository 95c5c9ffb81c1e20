package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenlens/networks"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--file flag takes a network config json filepath OR a json string. The json should be in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1", "alternative_name_2"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"node_variable_name": "TOKENLENS_NODE_1",
		"default_nodes": {
			"node_name_1": "node_url_1",
			"node_name_2": "node_url_2"
		},
		"price_platform_id": "coingecko_platform_id"
	}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.TrimSpace(NetworkConfig)
		if content == "" {
			return fmt.Errorf("--file is required")
		}
		var raw []byte
		if strings.HasPrefix(content, "{") && strings.HasSuffix(content, "}") {
			raw = []byte(content)
		} else {
			// content is a path to a json file
			jsonFile, err := os.Open(content)
			if err != nil {
				return fmt.Errorf("couldn't open the provided json file: %w", err)
			}
			defer jsonFile.Close()
			raw, err = io.ReadAll(jsonFile)
			if err != nil {
				return fmt.Errorf("couldn't read the provided json file: %w", err)
			}
		}
		newNetwork, err := networks.NewNetworkFromJSON(raw)
		if err != nil {
			return fmt.Errorf("the provided json is not a valid network config: %w", err)
		}

		allNames := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
		for _, name := range allNames {
			if _, err := networks.GetNetwork(name); err == nil {
				if !NetworkForce {
					return fmt.Errorf("network with name %s already exists. If you want to update the network, use flag --force", name)
				}
				u.Warn("Network with name %s already exists. It will be replaced.", name)
			}
		}
		if existing, err := networks.GetNetworkByID(newNetwork.GetChainID()); err == nil && existing.GetName() != newNetwork.GetName() {
			u.Warn("Chain ID %d is already used by %s. Lookups by chain ID will return %s.", newNetwork.GetChainID(), existing.GetName(), newNetwork.GetName())
		}
		if err := networks.AddNetwork(newNetwork); err != nil {
			return fmt.Errorf("failed to add the new network: %w", err)
		}
		u.Success("Network %s with chain ID %d added and saved to ~/.tokenlens/networks/.", newNetwork.GetName(), newNetwork.GetChainID())
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Run: func(cmd *cobra.Command, args []string) {
		rows := [][]string{}
		for _, n := range networks.GetSupportedNetworks() {
			nodes := networks.Nodes(n)
			names := make([]string, 0, len(nodes))
			for name := range nodes {
				names = append(names, name)
			}
			sort.Strings(names)
			platform := n.GetPricePlatformID()
			if platform == "" {
				platform = "-"
			}
			rows = append(rows, []string{
				n.GetName(),
				strings.Join(n.GetAlternativeNames(), ", "),
				fmt.Sprintf("%d", n.GetChainID()),
				platform,
				n.GetNodeVariableName(),
				strings.Join(names, ", "),
			})
		}
		u.Table([]string{"Name", "Also", "Chain ID", "Price platform", "Node env var", "RPC nodes"}, rows)
		u.Info("")
		u.Info("To add more networks: tokenlens network add --file <json>")
		u.Info("To delete a network, delete its json file in ~/.tokenlens/networks/.")
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage all networks that tokenlens supports",
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "file", "f", "", "path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVar(&NetworkForce, "force", false, "replace the network if it already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
