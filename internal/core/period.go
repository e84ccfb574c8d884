package core

import "time"

// Named period tokens accepted by ResolvePeriod.
const (
	PeriodThisMonth   = "this_month"
	PeriodLastMonth   = "last_month"
	PeriodLast3Months = "last_3_months"
	PeriodThisYear    = "this_year"
	PeriodAllTime     = "all_time"
)

// ResolvePeriod maps a period token to an inclusive date range relative to
// today. Unknown tokens degrade to all_time (both bounds empty) rather than
// erroring: callers never see a resolver failure.
//
// last_3_months is a fixed 90-day window, not calendar-month arithmetic.
func ResolvePeriod(period string, today time.Time) (start, end Date) {
	day := DateOf(today)
	switch period {
	case PeriodThisMonth:
		return NewDate(day.Year(), int(day.Month()), 1), day
	case PeriodLastMonth:
		// Last day of the previous month is the day before the first of
		// this month; its month-start is the range start.
		firstOfMonth := NewDate(day.Year(), int(day.Month()), 1)
		lastOfPrev := Date{Time: firstOfMonth.AddDate(0, 0, -1)}
		return NewDate(lastOfPrev.Year(), int(lastOfPrev.Month()), 1), lastOfPrev
	case PeriodLast3Months:
		return Date{Time: day.AddDate(0, 0, -90)}, day
	case PeriodThisYear:
		return NewDate(day.Year(), 1, 1), day
	}
	return Date{}, Date{}
}
