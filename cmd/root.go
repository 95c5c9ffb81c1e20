// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/tokenlens/config"
	"github.com/tranvictor/tokenlens/ui"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
	u      ui.UI
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tokenlens",
	Short: "Look up holder maps, networks and market data of EVM tokens",
	Long: fmt.Sprintf(`Tokenlens resolves everything a token report needs from a contract address:

	1. A holder map image, captured from the holder map site with a headless
	Chrome. Captures are cached on disk for an hour and a placeholder image is
	used when the site can't be rendered.

	2. The network the contract is deployed on, found by asking the RPC nodes of
	every candidate network for the contract's bytecode.

	3. Price, 24h change, market cap and volume from CoinGecko, cached for ten
	minutes.

Settings are read from %s (see "tokenlens write-config"). The following env vars
override it:
	1. Image cache directory: %s
	2. CoinGecko API key: %s
	3. Redis address for the market data cache: %s
	4. Chrome binary: %s
	5. Remote Chrome debugger url: %s

Custom RPC nodes can be set per network with the env var shown by
"tokenlens network list".`,
		config.DefaultConfigFile(),
		config.CacheDirEnv,
		config.APIKeyEnv,
		config.RedisAddrEnv,
		config.BrowserBinEnv,
		config.DebuggerURLEnv,
	),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err = config.Load(config.ConfigFile)
		if err != nil {
			return err
		}
		if err = cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", config.ConfigFile, err)
		}
		logger, err = cfg.Logging.Logger(config.Verbose)
		if err != nil {
			return err
		}
		if u == nil {
			u = ui.NewTerminalUI()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&config.ConfigFile, "config", config.DefaultConfigFile(), "path to the yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "log at debug level")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
