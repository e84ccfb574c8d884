package core

import (
	"testing"
	"time"
)

func TestResolvePeriod(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		period string
		start  string
		end    string
	}{
		{PeriodThisMonth, "2024-03-01", "2024-03-15"},
		// Leap year: February 2024 ends on the 29th.
		{PeriodLastMonth, "2024-02-01", "2024-02-29"},
		{PeriodLast3Months, "2023-12-16", "2024-03-15"},
		{PeriodThisYear, "2024-01-01", "2024-03-15"},
		{PeriodAllTime, "", ""},
		{"next_quarter", "", ""}, // unknown tokens degrade to unbounded
		{"", "", ""},
	}
	for _, tc := range cases {
		start, end := ResolvePeriod(tc.period, today)
		if start.String() != tc.start || end.String() != tc.end {
			t.Fatalf("%q: expected [%s, %s], got [%s, %s]",
				tc.period, tc.start, tc.end, start, end)
		}
	}
}

func TestResolvePeriodLastMonthAcrossYear(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	start, end := ResolvePeriod(PeriodLastMonth, today)
	if start.String() != "2023-12-01" || end.String() != "2023-12-31" {
		t.Fatalf("expected December 2023, got [%s, %s]", start, end)
	}
}
