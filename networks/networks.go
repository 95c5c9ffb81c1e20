package networks

import (
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Nodes returns the RPC nodes of a network: its default nodes plus the node
// set in the network's node env variable, if any.
func Nodes(n Network) map[string]string {
	nodes := map[string]string{}
	for name, url := range n.GetDefaultNodes() {
		nodes[name] = url
	}
	customNode := strings.Trim(os.Getenv(n.GetNodeVariableName()), " ")
	if customNode != "" {
		nodes["custom-node"] = customNode
	}
	return nodes
}

// Suggest returns up to max supported network names that fuzzy match name,
// best match first. Used for "did you mean" hints.
func Suggest(name string, max int) []string {
	names := GetSupportedNetworkNames()
	matches := fuzzy.Find(strings.ToLower(name), names)
	res := []string{}
	for _, m := range matches {
		if len(res) >= max {
			break
		}
		res = append(res, m.Str)
	}
	return res
}

// DefaultCandidates is the ordered list of networks probed when the caller
// doesn't know which network a contract lives on. Order is priority: when
// several networks validate, the earliest one wins.
func DefaultCandidates() []string {
	return []string{"eth", "bsc", "ftm", "avax", "cro", "arbi", "poly", "base"}
}

const DefaultNetwork = "eth"
