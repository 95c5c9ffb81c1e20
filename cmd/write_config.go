package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenlens/config"
)

var writeConfigForce bool

var writeConfigCmd = &cobra.Command{
	Use:   "write-config",
	Short: "Write the effective config to the --config path",
	Long: `Writes the defaults merged with the current config file and env overrides
to the --config path so it can be edited. An existing file is only replaced
with --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(config.ConfigFile); err == nil && !writeConfigForce {
			return fmt.Errorf("%s already exists, use --force to overwrite it", config.ConfigFile)
		}
		if err := cfg.Save(config.ConfigFile); err != nil {
			return err
		}
		u.Success("Config written to %s.", config.ConfigFile)
		return nil
	},
}

func init() {
	writeConfigCmd.Flags().BoolVar(&writeConfigForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(writeConfigCmd)
}
