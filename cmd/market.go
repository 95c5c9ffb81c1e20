package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/config"
)

var marketCmd = &cobra.Command{
	Use:     "market <address>",
	Short:   "Show price, 24h change, market cap and volume of a token",
	Args:    cobra.ExactArgs(1),
	PreRunE: CommonAddressPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]
		networkID, err := detectIfEmpty(cmd.Context(), address, config.Network)
		if err != nil {
			return err
		}
		resolver, cleanup, err := newMarketResolver(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		stop := u.Spinner(fmt.Sprintf("Fetching market data of %s on %s...", common.ShortAddress(address), networkID))
		data, err := resolver.Resolve(cmd.Context(), address, networkID)
		stop()
		if err != nil {
			return err
		}
		u.Info("Network: %s", networkID)
		printMarketData(u, data)
		return nil
	},
}

func init() {
	addNetworkFlag(marketCmd)
	rootCmd.AddCommand(marketCmd)
}
