package reader

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// EthReader reads from every node of one network in parallel and takes the
// first successful answer.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string, timeout time.Duration) *EthReader {
	ns := map[string]EthereumNode{}
	for name, c := range nodes {
		ns[name] = NewOneNodeReader(name, c, timeout)
	}
	return &EthReader{
		nodes: ns,
	}
}

func NewEthReaderFromNodes(nodes ...EthereumNode) *EthReader {
	ns := map[string]EthereumNode{}
	for _, n := range nodes {
		ns[n.NodeName()] = n
	}
	return &EthReader{
		nodes: ns,
	}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type getCodeResponse struct {
	Code  []byte
	Error error
}

func (er *EthReader) GetCode(ctx context.Context, address string) (code []byte, err error) {
	if len(er.nodes) == 0 {
		return nil, errors.New("no nodes configured")
	}
	resCh := make(chan getCodeResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			code, err := n.GetCode(ctx, address)
			resCh <- getCodeResponse{
				Code:  code,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	// a lagging node can answer empty code for a fresh contract, so empty
	// only wins once every node has answered
	errs := []error{}
	answeredEmpty := false
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		if len(result.Code) > 0 {
			return result.Code, nil
		}
		answeredEmpty = true
	}
	if answeredEmpty {
		return []byte{}, nil
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

// Close releases the connections of every node that holds one.
func (er *EthReader) Close() {
	for _, n := range er.nodes {
		if c, ok := n.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
