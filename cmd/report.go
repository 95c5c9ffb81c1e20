package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/config"
)

var reportCmd = &cobra.Command{
	Use:   "report <address>",
	Short: "Build the full token report: network, holder map and market data",
	Long: `Detects the network when --network is not given, then captures the holder
map and fetches market data concurrently. The holder map is written to
--output and the rest is printed.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: CommonAddressPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]
		service, cleanup, err := newReportService(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		stop := func() {}
		if !config.JSONOutput {
			stop = u.Spinner(fmt.Sprintf("Building report of %s...", common.ShortAddress(address)))
		}
		r, err := service.Build(cmd.Context(), address, config.Network)
		stop()
		if err != nil {
			return err
		}
		path := imagePath(address, r.NetworkID)
		if err := writeImage(path, r.Image.Image); err != nil {
			return fmt.Errorf("couldn't write %s: %w", path, err)
		}
		if config.JSONOutput {
			return printReportJSON(u, r, path)
		}
		printReport(u, r, path)
		return nil
	},
}

func init() {
	addNetworkFlag(reportCmd)
	addOutputFlag(reportCmd)
	reportCmd.Flags().BoolVar(&config.JSONOutput, "json", false, "print the report as json")
	rootCmd.AddCommand(reportCmd)
}
