package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/tokenlens/common"
)

const token = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

type probe struct {
	valid bool
	err   error
	delay time.Duration
}

type fakeValidator struct {
	probes map[string]probe
	calls  atomic.Int32
}

func (f *fakeValidator) Validate(ctx context.Context, address, networkID string) (bool, error) {
	f.calls.Add(1)
	p := f.probes[networkID]
	time.Sleep(p.delay)
	return p.valid, p.err
}

func TestResolveFirstValidInDeclaredOrder(t *testing.T) {
	// ftm answers first but bsc is declared before it
	v := &fakeValidator{probes: map[string]probe{
		"eth": {valid: false, delay: 5 * time.Millisecond},
		"bsc": {valid: true, delay: 40 * time.Millisecond},
		"ftm": {valid: true},
	}}
	r := NewResolver(v)

	for i := 0; i < 5; i++ {
		network, err := r.Resolve(context.Background(), token, []string{"eth", "bsc", "ftm"}, "eth")
		require.NoError(t, err)
		assert.Equal(t, "bsc", network)
	}
	assert.EqualValues(t, 15, v.calls.Load())
}

func TestResolveDefaultsWhenNothingValidates(t *testing.T) {
	v := &fakeValidator{probes: map[string]probe{}}
	network, err := NewResolver(v).Resolve(context.Background(), token, []string{"eth", "bsc"}, "eth")
	require.NoError(t, err)
	assert.Equal(t, "eth", network)

	network, err = NewResolver(v).Resolve(context.Background(), token, nil, "bsc")
	require.NoError(t, err)
	assert.Equal(t, "bsc", network)
}

func TestResolveProbeErrorCountsAsInvalid(t *testing.T) {
	v := &fakeValidator{probes: map[string]probe{
		"eth":  {err: errors.New("429 too many requests")},
		"bsc":  {err: errors.New("timeout")},
		"poly": {valid: true, delay: 10 * time.Millisecond},
	}}
	network, err := NewResolver(v).Resolve(context.Background(), token, []string{"eth", "bsc", "poly"}, "eth")
	require.NoError(t, err)
	assert.Equal(t, "poly", network)
	assert.EqualValues(t, 3, v.calls.Load())
}

func TestResolveInvalidAddress(t *testing.T) {
	v := &fakeValidator{}
	_, err := NewResolver(v).Resolve(context.Background(), "0x1234", []string{"eth"}, "eth")
	assert.ErrorIs(t, err, common.ErrInvalidAddress)
	assert.EqualValues(t, 0, v.calls.Load())
}

func TestProbeKeepsCandidateOrder(t *testing.T) {
	v := &fakeValidator{probes: map[string]probe{
		"eth": {valid: true, delay: 30 * time.Millisecond},
		"bsc": {valid: false},
	}}
	results := NewResolver(v).Probe(context.Background(), token, []string{"eth", "bsc"})
	assert.Equal(t, []ProbeResult{
		{NetworkID: "eth", Valid: true},
		{NetworkID: "bsc", Valid: false},
	}, results)
}

// newRPCServer is a JSON-RPC node answering eth_getCode with code.
func newRPCServer(t *testing.T, code string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%q}`, req.ID, code)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestNodeValidator(t *testing.T) {
	contract := newRPCServer(t, "0x6080604052")
	wallet := newRPCServer(t, "0x")
	nodes := func(networkID string) (map[string]string, error) {
		switch networkID {
		case "bsc":
			return map[string]string{"node": contract.URL}, nil
		case "eth":
			return map[string]string{"node": wallet.URL}, nil
		}
		return nil, common.ErrInvalidNetwork
	}
	v := NewNodeValidator(time.Second, nodes)

	valid, err := v.Validate(context.Background(), token, "bsc")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = v.Validate(context.Background(), token, "eth")
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = v.Validate(context.Background(), token, "nope")
	assert.ErrorIs(t, err, common.ErrInvalidNetwork)

	network, err := NewResolver(v).Resolve(context.Background(), token, []string{"eth", "nope", "bsc"}, "eth")
	require.NoError(t, err)
	assert.Equal(t, "bsc", network)

	v.Close()
	assert.Empty(t, v.readers)
	// readers are dialed again after Close
	valid, err = v.Validate(context.Background(), token, "bsc")
	require.NoError(t, err)
	assert.True(t, valid)
	v.Close()
}

func TestRegistryNodes(t *testing.T) {
	nodes, err := RegistryNodes("bsc")
	require.NoError(t, err)
	assert.NotEmpty(t, nodes)

	_, err = RegistryNodes("not-a-network")
	assert.Error(t, err)
}
