package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/config"
	"github.com/tranvictor/tokenlens/ui"
	"github.com/tranvictor/tokenlens/util/chain"
)

var detectCmd = &cobra.Command{
	Use:   "detect <address>",
	Short: "Find out which network a contract is deployed on",
	Long: `Probes every candidate network concurrently and prints the first one, in
candidate order, where the address has contract code. When no candidate
matches, the default network is printed.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: CommonAddressPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]
		candidates, def, err := candidateNetworks()
		if err != nil {
			return err
		}
		resolver, closeChain := newChainResolver(cfg, logger)
		defer closeChain()

		stop := u.Spinner(fmt.Sprintf("Probing %d networks for %s...", len(candidates), common.ShortAddress(address)))
		results := resolver.Probe(cmd.Context(), address, candidates)
		stop()

		printProbeResults(u, results)
		for _, r := range results {
			if r.Valid {
				u.Success("%s is deployed on %s.", address, r.NetworkID)
				return nil
			}
		}
		u.Warn("%s has no code on any candidate network, defaulting to %s.", address, def)
		return nil
	},
}

func printProbeResults(u ui.UI, results []chain.ProbeResult) {
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		found := ui.StyledText{Text: "no", Severity: ui.SeverityError}
		if r.Valid {
			found = ui.StyledText{Text: "yes", Severity: ui.SeveritySuccess}
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), r.NetworkID, u.Style(found)})
	}
	u.Table([]string{"#", "Network", "Contract"}, rows)
}

func init() {
	detectCmd.Flags().StringSliceVar(&config.Candidates, "candidates", nil, "comma separated networks to probe, in priority order. Default: chain.candidates of the config")
	detectCmd.Flags().StringVar(&config.DefaultNetwork, "default", "", "network used when no candidate matches. Default: chain.default of the config")
	rootCmd.AddCommand(detectCmd)
}
