// Package normalize turns noisy currency and date substrings into typed values.
// Nothing in this package returns an error: unparsable input becomes nil.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// noneTokens render as "no value" on every supported report.
var noneTokens = map[string]bool{
	"":     true,
	"-":    true,
	"—":    true,
	"na":   true,
	"n/a":  true,
	"none": true,
}

var (
	numberToken = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	// labelFigure matches a dollar figure inside a compound label such as
	// "High Balance (Hist.) $500 $750".
	labelFigure = regexp.MustCompile(`\$?\s*([\d,]+(?:\.\d+)?)`)
)

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

// ParseAmount converts a currency or number to a float64.
//
// Numeric input passes through. Strings are trimmed, "none" tokens yield nil,
// and after stripping "$" and thousands separators the last numeric token in
// the string is parsed, so "Balance 1,109 USD 2" reads as 2.
func ParseAmount(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return Float(n)
	case float32:
		return Float(float64(n))
	case int:
		return Float(float64(n))
	case int64:
		return Float(float64(n))
	case decimal.Decimal:
		return Float(n.InexactFloat64())
	case *float64:
		if n == nil {
			return nil
		}
		return Float(*n)
	case string:
		return parseAmountString(n)
	}
	return nil
}

func parseAmountString(s string) *float64 {
	s = strings.TrimSpace(s)
	if noneTokens[strings.ToLower(s)] {
		return nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	tokens := numberToken.FindAllString(s, -1)
	if len(tokens) == 0 {
		return nil
	}
	d, err := decimal.NewFromString(tokens[len(tokens)-1])
	if err != nil {
		return nil
	}
	return Float(d.InexactFloat64())
}

// LatestAmountFromLabel returns the last figure embedded in a "(Hist.)"
// label. Those labels list the most recent figure last.
func LatestAmountFromLabel(text string) *float64 {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	figures := labelFigure.FindAllStringSubmatch(text, -1)
	if len(figures) == 0 {
		return nil
	}
	return ParseAmount(figures[len(figures)-1][1])
}

// FormatAmount renders f as a plain numeral that ParseAmount reads back
// to the same value.
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
