package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tranvictor/tokenlens/networks"
	"github.com/tranvictor/tokenlens/util/reader"
)

// NodesFunc returns the RPC nodes (name => url) to probe networkID with.
type NodesFunc func(networkID string) (map[string]string, error)

// RegistryNodes looks networkID up in the network registry.
func RegistryNodes(networkID string) (map[string]string, error) {
	n, err := networks.GetNetwork(networkID)
	if err != nil {
		return nil, err
	}
	return networks.Nodes(n), nil
}

// NodeValidator considers an address valid on a network when the
// network's RPC nodes return non-empty bytecode for it.
type NodeValidator struct {
	timeout time.Duration
	nodes   NodesFunc

	mu      sync.Mutex
	readers map[string]*reader.EthReader
}

func NewNodeValidator(timeout time.Duration, nodes NodesFunc) *NodeValidator {
	if timeout <= 0 {
		timeout = reader.TIMEOUT
	}
	if nodes == nil {
		nodes = RegistryNodes
	}
	return &NodeValidator{
		timeout: timeout,
		nodes:   nodes,
		readers: map[string]*reader.EthReader{},
	}
}

func (v *NodeValidator) reader(networkID string) (*reader.EthReader, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if r, found := v.readers[networkID]; found {
		return r, nil
	}
	nodes, err := v.nodes(networkID)
	if err != nil {
		return nil, err
	}
	r := reader.NewEthReaderGeneric(nodes, v.timeout)
	v.readers[networkID] = r
	return r, nil
}

// Close drops the RPC connections opened by Validate.
func (v *NodeValidator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for networkID, r := range v.readers {
		r.Close()
		delete(v.readers, networkID)
	}
}

func (v *NodeValidator) Validate(ctx context.Context, address, networkID string) (bool, error) {
	r, err := v.reader(networkID)
	if err != nil {
		return false, err
	}
	code, err := r.GetCode(ctx, address)
	if err != nil {
		return false, fmt.Errorf("probing %s: %w", networkID, err)
	}
	return len(code) > 0, nil
}
