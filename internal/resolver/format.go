package resolver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/deckforge/deckforge/internal/model"
)

var englishPrinter = message.NewPrinter(language.English)

// lookupPath walks a dot path ("revenue.arr") into a business-data record.
// A nil value or empty string counts as unavailable.
func lookupPath(data map[string]interface{}, path string) (interface{}, bool) {
	if len(data) == 0 || path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var cur interface{} = data
	for _, part := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	if s, ok := cur.(string); ok && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return cur, true
}

// formatValue renders a bound value according to the data element's format.
// Number-like formats fall back to plain text when the value is not numeric.
func formatValue(v interface{}, format model.DataFormat) string {
	switch format {
	case model.FormatNumber:
		if f, ok := asFloat(v); ok {
			return formatNumber(f)
		}
	case model.FormatCurrency:
		if f, ok := asFloat(v); ok {
			return "$" + formatNumber(f)
		}
	case model.FormatPercentage:
		if f, ok := asFloat(v); ok {
			return formatNumber(f) + "%"
		}
	}
	return fmt.Sprint(v)
}

// formatNumber prints with thousands separators; integral values drop the
// fraction, everything else keeps two decimal places.
func formatNumber(f float64) string {
	if f == math.Trunc(f) {
		return englishPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(0)))
	}
	return englishPrinter.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// FontSizePixels normalizes a stored font-size string ("16px", "12pt", "18")
// to an integer pixel count. This value is used for measurement only; the
// resolved style keeps the original unit string.
func FontSizePixels(fontSize string) int {
	s := strings.TrimSpace(strings.ToLower(fontSize))
	unit := 1.0
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		s = strings.TrimSuffix(s, "pt")
		unit = 4.0 / 3.0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 16
	}
	return int(math.Round(f * unit))
}
