// Package normalize converts raw spreadsheet cell values into clean numeric, date and string primitives.
// None of the functions in this package return errors: unparsable input degrades to a zero value.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// invisibleSpace are runes that spreadsheet exports leave around cell text
const invisibleSpace = "\u00a0\u200b\ufeff"

// CleanText stringifies and trims a raw cell value. nil maps to the empty string.
func CleanText(raw any) string {
	var s string
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		s = v
	case []byte:
		s = string(v)
	case fmt.Stringer:
		s = v.String()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		s = decimal.NewFromFloat(v).String()
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return ""
		}
		s = decimal.NewFromFloat32(v).String()
	default:
		s = fmt.Sprint(v)
	}
	return strings.Trim(strings.TrimSpace(s), invisibleSpace+" \t\r\n")
}
