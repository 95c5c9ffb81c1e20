package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/config"
	"github.com/tranvictor/tokenlens/networks"
)

// networkID resolves a user given network name (any alternative name works)
// to the network id used in cache keys and page urls.
func networkID(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	n, err := networks.GetNetwork(name)
	if err == nil {
		return n.GetName(), nil
	}
	if !errors.Is(err, networks.ErrNetworkNotFound) {
		return "", err
	}
	hint := ""
	if suggestions := networks.Suggest(name, 3); len(suggestions) > 0 {
		hint = fmt.Sprintf(". Did you mean: %s?", strings.Join(suggestions, ", "))
	}
	return "", fmt.Errorf("%w: %q is not supported%s", common.ErrInvalidNetwork, name, hint)
}

// CommonAddressPreprocess checks the address argument and normalizes the
// --network flag. An empty network is left empty and detected later.
func CommonAddressPreprocess(cmd *cobra.Command, args []string) (err error) {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one contract address, got %d args", len(args))
	}
	if err = common.ValidateAddress(args[0]); err != nil {
		return err
	}
	if config.Network != "" {
		config.Network, err = networkID(config.Network)
		if err != nil {
			return err
		}
	}
	return nil
}

// candidateNetworks is the probe list of detect: the --candidates flag if
// set, the config otherwise.
func candidateNetworks() ([]string, string, error) {
	candidates := cfg.Chain.Candidates
	if len(config.Candidates) > 0 {
		candidates = config.Candidates
	}
	def := cfg.Chain.Default
	if config.DefaultNetwork != "" {
		def = config.DefaultNetwork
	}
	res := make([]string, 0, len(candidates))
	for _, c := range candidates {
		id, err := networkID(c)
		if err != nil {
			return nil, "", err
		}
		res = append(res, id)
	}
	def, err := networkID(def)
	if err != nil {
		return nil, "", err
	}
	return res, def, nil
}

func addNetworkFlag(c *cobra.Command) {
	c.Flags().StringVarP(&config.Network, "network", "k", "", "network of the token, detected from the contract when empty. See \"tokenlens network list\"")
}
