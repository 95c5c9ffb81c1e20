package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/config"
	"github.com/tranvictor/tokenlens/report"
	"github.com/tranvictor/tokenlens/ui"
)

const token = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

func TestNetworkID(t *testing.T) {
	id, err := networkID("Binance")
	require.NoError(t, err)
	assert.Equal(t, "bsc", id)

	id, err = networkID(" polygon ")
	require.NoError(t, err)
	assert.Equal(t, "poly", id)

	_, err = networkID("etherum")
	require.ErrorIs(t, err, common.ErrInvalidNetwork)
	assert.Contains(t, err.Error(), "Did you mean")
	assert.Contains(t, err.Error(), "ethereum")
}

func TestCommonAddressPreprocess(t *testing.T) {
	defer func() { config.Network = "" }()

	config.Network = "arbitrum"
	require.NoError(t, CommonAddressPreprocess(reportCmd, []string{token}))
	assert.Equal(t, "arbi", config.Network)

	config.Network = ""
	require.NoError(t, CommonAddressPreprocess(reportCmd, []string{token}))
	assert.Equal(t, "", config.Network)

	assert.ErrorIs(t, CommonAddressPreprocess(reportCmd, []string{"0xabc"}), common.ErrInvalidAddress)
	assert.Error(t, CommonAddressPreprocess(reportCmd, nil))
}

func TestCandidateNetworks(t *testing.T) {
	cfg = config.Default()
	defer func() {
		config.Candidates = nil
		config.DefaultNetwork = ""
	}()

	candidates, def, err := candidateNetworks()
	require.NoError(t, err)
	assert.Equal(t, []string{"eth", "bsc", "ftm", "avax", "cro", "arbi", "poly", "base"}, candidates)
	assert.Equal(t, "eth", def)

	config.Candidates = []string{"matic", "fantom"}
	config.DefaultNetwork = "binance"
	candidates, def, err = candidateNetworks()
	require.NoError(t, err)
	assert.Equal(t, []string{"poly", "ftm"}, candidates)
	assert.Equal(t, "bsc", def)

	config.Candidates = []string{"solana"}
	_, _, err = candidateNetworks()
	assert.ErrorIs(t, err, common.ErrInvalidNetwork)
}

func TestImagePath(t *testing.T) {
	defer func() { config.OutputFile = "" }()
	assert.Equal(t, "bsc_0x6b175474e89094c44da98b954eedeac495271d0f.png", imagePath(token, "bsc"))
	config.OutputFile = "dai.png"
	assert.Equal(t, "dai.png", imagePath(token, "bsc"))
}

func TestWriteImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps", "dai.png")
	require.NoError(t, writeImage(path, []byte("png")))
	assert.FileExists(t, path)
}

func testReport(market *common.MarketData) *report.Report {
	return &report.Report{
		Address:   token,
		NetworkID: "bsc",
		Detected:  true,
		Image:     common.CaptureResult{Image: []byte("png"), Origin: common.OriginFallback},
		Market:    market,
		Elapsed:   1500 * time.Millisecond,
	}
}

func TestPrintReport(t *testing.T) {
	r := ui.NewRecordingUI()
	printReport(r, testReport(&common.MarketData{
		Price:     0.9998,
		Change24h: -1.5,
		MarketCap: 5350000000,
		Volume24h: 210000000,
	}), "dai.png")

	kv := r.Messages("KeyValue")
	assert.Contains(t, kv, "Network: bsc (detected)")
	assert.Contains(t, kv, "Image origin: fallback (holder map unavailable)")
	assert.Contains(t, kv, "Market cap: $5.35B")
	assert.Empty(t, r.Messages("Warn"))
	assert.True(t, r.HasMessage("resolved in 1.5s"))
}

func TestPrintReportWithoutMarketData(t *testing.T) {
	r := ui.NewRecordingUI()
	printReport(r, testReport(nil), "dai.png")
	assert.Equal(t, []string{"Market data is unavailable for this token."}, r.Messages("Warn"))
}

func TestPrintReportJSON(t *testing.T) {
	r := ui.NewRecordingUI()
	require.NoError(t, printReportJSON(r, testReport(nil), "dai.png"))
	out := r.Output()
	assert.Contains(t, out, `"network": "bsc"`)
	assert.Contains(t, out, `"image_origin": "fallback (holder map unavailable)"`)
	assert.Contains(t, out, `"market": null`)
	assert.False(t, strings.Contains(out, "\x1b["))
}
