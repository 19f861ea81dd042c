package normalize

import (
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "iso", raw: "2024-01-15", want: "2024-01-15"},
		{name: "iso with time", raw: "2024-01-15 23:59:59", want: "2024-01-15"},
		{name: "slashes year first", raw: "2024/01/15 10:00", want: "2024-01-15"},
		{name: "day first", raw: "15/01/2024", want: "2024-01-15"},
		{name: "day first with time", raw: "15/01/2024 00:05:00", want: "2024-01-15"},
		{name: "single digit day first", raw: "5/1/2024", want: "2024-01-05"},
		{name: "dashes day first", raw: "15-01-2024", want: "2024-01-15"},
		{name: "month name", raw: "15 Jan 2024", want: "2024-01-15"},
		{name: "rfc3339 keeps wall clock", raw: "2024-01-15T23:30:00+07:00", want: "2024-01-15"},
		{name: "buddhist era", raw: "15/01/2567", want: "2024-01-15"},
		{name: "buddhist era leap day", raw: "29/02/2567", want: "2024-02-29"},
		{name: "compact", raw: "20240115", want: "2024-01-15"},
		{name: "compact buddhist era", raw: "25670115", want: "2024-01-15"},
		{name: "serial string", raw: "45306", want: "2024-01-15"},
		{name: "serial with time fraction", raw: "45306.9999", want: "2024-01-15"},
		{name: "serial float", raw: 45351.0, want: "2024-02-29"},
		{name: "serial int", raw: 45306, want: "2024-01-15"},
		{name: "civil date", raw: civil.Date{Year: 2024, Month: time.March, Day: 3}, want: "2024-03-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCalendarDate(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseCalendarDate_Invalid(t *testing.T) {
	for _, raw := range []any{nil, "", "   ", "not a date", "32/01/2024", "0", -5, time.Time{}, (*time.Time)(nil), math.NaN()} {
		assert.Nil(t, ParseCalendarDate(raw), "%v", raw)
	}
}

func TestParseCalendarDate_IndependentOfLocalZone(t *testing.T) {
	original := time.Local
	defer func() { time.Local = original }()

	zones := []string{"UTC", "Asia/Bangkok", "Pacific/Honolulu", "Pacific/Kiritimati"}
	inputs := []any{
		"2024-01-15 23:30:00",
		"15/01/2024 00:10",
		45306.98,
	}

	bangkok, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)
	nearMidnight := time.Date(2024, time.January, 15, 23, 45, 0, 0, bangkok)
	justAfterMidnight := time.Date(2024, time.January, 15, 0, 15, 0, 0, bangkok)

	for _, zone := range zones {
		loc, err := time.LoadLocation(zone)
		require.NoError(t, err)
		time.Local = loc

		for _, raw := range inputs {
			got := ParseCalendarDate(raw)
			require.NotNil(t, got)
			assert.Equal(t, "2024-01-15", got.String(), "zone %s input %v", zone, raw)
		}
		assert.Equal(t, "2024-01-15", ParseCalendarDate(nearMidnight).String(), zone)
		assert.Equal(t, "2024-01-15", ParseCalendarDate(justAfterMidnight).String(), zone)
	}
}
