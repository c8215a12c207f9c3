package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func endOf(s string) time.Time {
	return day(s).Add(24*time.Hour - time.Nanosecond)
}

func TestTimeframeRange(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tf        Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "ThisMonth", tf: TimeframeThisMonth, wantStart: day("2025-01-01"), wantEnd: endOf("2025-01-15")},
		{name: "LastMonthAcrossYear", tf: TimeframeLastMonth, wantStart: day("2024-12-01"), wantEnd: endOf("2024-12-31")},
		{name: "FiscalQuarter", tf: TimeframeFiscalQuarter, wantStart: day("2025-01-01"), wantEnd: endOf("2025-01-15")},
		{name: "FiscalYear", tf: TimeframeFiscalYear, wantStart: day("2024-10-01"), wantEnd: endOf("2025-01-15")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := timeframeRange(tt.tf, now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestFiscalYearStart(t *testing.T) {
	assert.Equal(t, day("2024-10-01"), fiscalYearStart(day("2025-09-30")))
	assert.Equal(t, day("2025-10-01"), fiscalYearStart(day("2025-10-01")))
}

func TestParseCustomRange(t *testing.T) {
	start, end, err := parseCustomRange(" 2025-01-01", "2025-01-31 ")
	require.NoError(t, err)
	assert.Equal(t, day("2025-01-01"), start)
	assert.Equal(t, endOf("2025-01-31"), end)

	_, _, err = parseCustomRange("2025-02-01", "2025-01-01")
	assert.EqualError(t, err, "end date is before start date")

	_, _, err = parseCustomRange("Jan 1", "2025-01-01")
	assert.Error(t, err)
}

func TestTimeframeSelectedMsg_Filter(t *testing.T) {
	assert.Nil(t, TimeframeSelectedMsg{All: true}.Filter().DateFrom)

	f := TimeframeSelectedMsg{Start: day("2025-01-01"), End: endOf("2025-01-31")}.Filter()
	require.NotNil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, endOf("2025-01-31"), *f.DateTo)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "30000", want: "$30,000.00"},
		{in: "999.5", want: "$999.50"},
		{in: "1234567.891", want: "$1,234,567.89"},
		{in: "-1500", want: "-$1,500.00"},
		{in: "0", want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}
