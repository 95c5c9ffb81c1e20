package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/config"
)

var captureCmd = &cobra.Command{
	Use:     "capture <address>",
	Short:   "Capture the holder map of a token to a png file",
	Example: "  tokenlens capture 0x6B175474E89094C44Da98b954EedeAC495271d0F -k eth -o dai.png",
	Args:    cobra.ExactArgs(1),
	PreRunE: CommonAddressPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]
		networkID, err := detectIfEmpty(cmd.Context(), address, config.Network)
		if err != nil {
			return err
		}
		capturer, cleanup, err := newCapturer(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		stop := u.Spinner(fmt.Sprintf("Capturing holder map of %s on %s...", common.ShortAddress(address), networkID))
		res, err := capturer.Capture(cmd.Context(), address, networkID)
		stop()
		if err != nil {
			return err
		}
		path := imagePath(address, networkID)
		if err := writeImage(path, res.Image); err != nil {
			return fmt.Errorf("couldn't write %s: %w", path, err)
		}
		u.KeyValue([][2]string{
			{"Network", networkID},
			{"Origin", u.Style(originStyle(res.Origin))},
			{"Saved to", path},
		})
		return nil
	},
}

func init() {
	addNetworkFlag(captureCmd)
	addOutputFlag(captureCmd)
	rootCmd.AddCommand(captureCmd)
}
