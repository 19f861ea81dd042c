package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"
)

// Excel serials outside this range are not dates (9999-12-31 is 2958465)
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// buddhistEraOffset converts a Thai Buddhist-era year to the Gregorian calendar
const buddhistEraOffset = 543

// dateLayouts are tried in order. Day-first layouts come before month-first ones
// because the marketplaces export Thai locale dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"02-01-2006",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02.01.2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 Jan 2006 15:04",
	"02 Jan 2006 15:04:05",
	"Jan 2, 2006",
	"02-Jan-2006",
}

var (
	buddhistYearPattern = regexp.MustCompile(`(^|[^0-9])(2[4-9][0-9]{2})([^0-9]|$)`)
	serialPattern       = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// ParseCalendarDate converts a raw cell value into a calendar date.
// The wall-clock day of the input is kept as-is: values are never shifted to UTC or to the
// process time zone, so the result does not depend on time.Local. Returns nil when the value
// is empty or cannot be understood.
func ParseCalendarDate(raw any) *civil.Date {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return validDate(civil.DateOf(v))
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return validDate(civil.DateOf(*v))
	case civil.Date:
		return validDate(v)
	case *civil.Date:
		if v == nil {
			return nil
		}
		return validDate(*v)
	case civil.DateTime:
		return validDate(v.Date)
	case float64:
		return fromExcelSerial(v)
	case float32:
		return fromExcelSerial(float64(v))
	case int:
		return fromExcelSerial(float64(v))
	case int64:
		return fromExcelSerial(float64(v))
	}

	s := CleanText(raw)
	if s == "" {
		return nil
	}
	if serialPattern.MatchString(s) {
		if len(s) == 8 {
			compact := s
			if y, err := strconv.Atoi(s[:4]); err == nil && y >= 2400 {
				compact = strconv.Itoa(y-buddhistEraOffset) + s[4:]
			}
			if t, err := time.Parse("20060102", compact); err == nil {
				return validDate(civil.DateOf(t))
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return fromExcelSerial(f)
	}

	s = toGregorianYear(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return validDate(civil.DateOf(t))
		}
	}
	return nil
}

// fromExcelSerial converts a 1900-system Excel serial into the date it displays
func fromExcelSerial(serial float64) *civil.Date {
	if !(serial >= minExcelSerial && serial <= maxExcelSerial) {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	// excelize returns the wall-clock value in UTC; read its fields directly
	return validDate(civil.DateOf(t))
}

// toGregorianYear rewrites a Buddhist-era year (e.g. 2567) into its Gregorian equivalent.
// It runs before layout parsing so that 29 February of a BE leap year still parses.
func toGregorianYear(s string) string {
	loc := buddhistYearPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	year, err := strconv.Atoi(s[loc[4]:loc[5]])
	if err != nil {
		return s
	}
	var b strings.Builder
	b.WriteString(s[:loc[4]])
	b.WriteString(strconv.Itoa(year - buddhistEraOffset))
	b.WriteString(s[loc[5]:])
	return b.String()
}

func validDate(d civil.Date) *civil.Date {
	if !d.IsValid() {
		return nil
	}
	return &d
}
