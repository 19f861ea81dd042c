package normalize

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarkers are stripped from amount strings before parsing
var currencyMarkers = []string{"THB", "บาท", "฿", "$", "¥", "€", "£"}

// quoteChars are stripped from amount strings before parsing
const quoteChars = "'\"`"

// ParseAmount converts a raw cell value into a decimal amount.
// Thousands separators, currency symbols, quote characters and surrounding whitespace are
// removed first. Accounting negatives "(1,234.50)" and trailing minus "1234.50-" are honored.
// Anything that still does not parse yields zero.
func ParseAmount(raw any) decimal.Decimal {
	d, _ := LookupAmount(raw)
	return d
}

// LookupAmount is ParseAmount that also reports whether the value was understood.
// Blank cells and a lone dash are valid zeros; garbage returns zero and false.
func LookupAmount(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, true
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case int32:
		return decimal.NewFromInt32(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(v), true
	}

	s := CleanText(raw)
	if s == "" || s == "-" {
		return decimal.Zero, true
	}
	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(quoteChars, r) || r == ',' || r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") && len(s) > 1 {
		negative = !negative
		s = s[:len(s)-1]
	}
	s = strings.TrimPrefix(s, "+")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		return d.Neg(), true
	}
	return d, true
}

// ParseQuantity converts a raw cell value into a non-negative unit count.
// Fractions are truncated and negative values clamp to zero.
func ParseQuantity(raw any) int64 {
	d := ParseAmount(raw).Truncate(0)
	if d.IsNegative() {
		return 0
	}
	return d.IntPart()
}
