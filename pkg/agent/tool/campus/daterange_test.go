package campus_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/duke-colab/bluebook/pkg/agent/tool/campus"
)

func mustDay(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	gt.NoError(t, err).Required()
	return d
}

func TestParseDateRange(t *testing.T) {
	// 2025-04-02 is a Wednesday, 2025-04-05 a Saturday, 2025-04-06 a
	// Sunday and 2025-04-07 a Monday.
	cases := []struct {
		name  string
		expr  string
		today string
		start string
		end   string
	}{
		{"today", "today", "2025-04-02", "2025-04-02", "2025-04-02"},
		{"today uppercase", "TODAY", "2025-04-02", "2025-04-02", "2025-04-02"},
		{"tomorrow", "tomorrow", "2025-04-02", "2025-04-03", "2025-04-03"},
		{"this week midweek", "this week", "2025-04-02", "2025-04-02", "2025-04-06"},
		{"this week on saturday", "this week", "2025-04-05", "2025-04-05", "2025-04-06"},
		{"this week on sunday", "this week", "2025-04-06", "2025-04-06", "2025-04-06"},
		{"next week midweek", "next week", "2025-04-02", "2025-04-07", "2025-04-13"},
		{"next week on sunday", "next week", "2025-04-06", "2025-04-07", "2025-04-13"},
		{"next week on monday", "next week", "2025-04-07", "2025-04-14", "2025-04-20"},
		{"weekend midweek", "weekend", "2025-04-02", "2025-04-05", "2025-04-06"},
		{"this weekend midweek", "this weekend", "2025-04-02", "2025-04-05", "2025-04-06"},
		{"weekend on saturday", "weekend", "2025-04-05", "2025-04-05", "2025-04-06"},
		{"weekend on sunday", "weekend", "2025-04-06", "2025-04-12", "2025-04-13"},
		{"next weekend midweek", "next weekend", "2025-04-02", "2025-04-12", "2025-04-13"},
		{"next weekend on saturday", "next weekend", "2025-04-05", "2025-04-19", "2025-04-20"},
		{"this month", "this month", "2025-04-02", "2025-04-02", "2025-04-30"},
		{"next month", "next month", "2025-04-02", "2025-05-01", "2025-05-31"},
		{"next month across year end", "next month", "2025-12-15", "2026-01-01", "2026-01-31"},
		{"this month in december", "this month", "2025-12-15", "2025-12-15", "2025-12-31"},
		{"n days", "next 3 days", "2025-04-02", "2025-04-02", "2025-04-05"},
		{"n days bare", "10 days", "2025-04-02", "2025-04-02", "2025-04-12"},
		{"unrecognized", "whenever works", "2025-04-02", "2025-04-02", "2025-04-02"},
		{"empty", "", "2025-04-02", "2025-04-02", "2025-04-02"},
		{"embedded phrase", "events happening this weekend", "2025-04-02", "2025-04-05", "2025-04-06"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := campus.ParseDateRange(tc.expr, mustDay(t, tc.today))
			gt.V(t, got.StartDate).Equal(tc.start)
			gt.V(t, got.EndDate).Equal(tc.end)
		})
	}
}

func TestParseDateRangePrefersLongerPhrase(t *testing.T) {
	today := mustDay(t, "2025-04-02")

	// "next weekend" must not resolve through the "next week" branch.
	weekend := campus.ParseDateRange("next weekend", today)
	week := campus.ParseDateRange("next week", today)
	gt.V(t, weekend.StartDate).Equal("2025-04-12")
	gt.B(t, weekend.StartDate == week.StartDate).False()
}

func TestParseDateRangeIgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2025, 4, 2, 12, 30, 45, 0, time.UTC)
	got := campus.ParseDateRange("today", noon)
	gt.V(t, got.StartDate).Equal("2025-04-02")
	gt.V(t, got.EndDate).Equal("2025-04-02")
}
