package common

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a USD price. Prices below 1 keep 4 significant digits
// so micro cap tokens don't show up as $0.00.
// Example:
// - FormatPrice(1234.5) = "$1,234.50"
// - FormatPrice(0.000012346) = "$0.00001235"
func FormatPrice(price float64) string {
	if price == 0 {
		return "$0"
	}
	abs := math.Abs(price)
	if abs >= 1 {
		return printer.Sprintf("$%.2f", price)
	}
	decimals := 3 - int(math.Floor(math.Log10(abs)))
	return "$" + strconv.FormatFloat(price, 'f', decimals, 64)
}

// FormatCompactUSD renders large USD amounts with K/M/B suffixes.
// Example:
// - FormatCompactUSD(1234) = "$1.23K"
// - FormatCompactUSD(25_000_000) = "$25.00M"
func FormatCompactUSD(amount float64) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1e12:
		return printer.Sprintf("$%.2fT", amount/1e12)
	case abs >= 1e9:
		return printer.Sprintf("$%.2fB", amount/1e9)
	case abs >= 1e6:
		return printer.Sprintf("$%.2fM", amount/1e6)
	case abs >= 1e3:
		return printer.Sprintf("$%.2fK", amount/1e3)
	default:
		return printer.Sprintf("$%.2f", amount)
	}
}

// FormatPercent renders a signed percentage, e.g. "+3.21%" or "-0.50%".
func FormatPercent(change float64) string {
	s := strconv.FormatFloat(change, 'f', 2, 64)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}
