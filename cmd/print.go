package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tranvictor/tokenlens/common"
	"github.com/tranvictor/tokenlens/report"
	"github.com/tranvictor/tokenlens/ui"
)

func originStyle(o common.Origin) ui.StyledText {
	switch o {
	case common.OriginLive:
		return ui.StyledText{Text: string(o), Severity: ui.SeveritySuccess}
	case common.OriginFallback:
		return ui.StyledText{Text: string(o) + " (holder map unavailable)", Severity: ui.SeverityWarn}
	default:
		return ui.StyledText{Text: string(o)}
	}
}

func changeStyle(change float64) ui.StyledText {
	s := ui.StyledText{Text: common.FormatPercent(change), Severity: ui.SeveritySuccess}
	if change < 0 {
		s.Severity = ui.SeverityError
	}
	return s
}

func printMarketData(u ui.UI, data *common.MarketData) {
	if data == nil {
		u.Warn("Market data is unavailable for this token.")
		return
	}
	u.KeyValue([][2]string{
		{"Price", common.FormatPrice(data.Price)},
		{"24h change", u.Style(changeStyle(data.Change24h))},
		{"Market cap", common.FormatCompactUSD(data.MarketCap)},
		{"24h volume", common.FormatCompactUSD(data.Volume24h)},
	})
}

func networkText(networkID string, detected bool) string {
	if detected {
		return networkID + " (detected)"
	}
	return networkID
}

func printReport(u ui.UI, r *report.Report, imageFile string) {
	u.Section("Token report")
	u.KeyValue([][2]string{
		{"Address", r.Address},
		{"Network", networkText(r.NetworkID, r.Detected)},
		{"Holder map", imageFile},
		{"Image origin", u.Style(originStyle(r.Image.Origin))},
	})
	u.Section("Market")
	printMarketData(u, r.Market)
	u.Info("")
	u.Info("Resolved in %s.", r.Elapsed.Round(time.Millisecond))
}

type jsonReport struct {
	Address     string             `json:"address"`
	Network     string             `json:"network"`
	Detected    bool               `json:"detected"`
	ImageFile   string             `json:"image_file"`
	ImageOrigin ui.StyledText      `json:"image_origin"`
	Market      *common.MarketData `json:"market"`
}

func printReportJSON(u ui.UI, r *report.Report, imageFile string) error {
	b, err := json.MarshalIndent(jsonReport{
		Address:     r.Address,
		Network:     r.NetworkID,
		Detected:    r.Detected,
		ImageFile:   imageFile,
		ImageOrigin: originStyle(r.Image.Origin),
		Market:      r.Market,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(u.Writer(), "%s\n", b)
	return err
}
