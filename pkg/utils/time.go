package utils

import "time"

// Day and month ends stop one microsecond short of the next period so they survive
// PostgreSQL's microsecond timestamp precision without rounding up.
const endOffset = time.Microsecond

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-endOffset)
}

// IsMidnight reports whether t has no time-of-day component, as a parsed date-only value does.
func IsMidnight(t time.Time) bool {
	return t.Equal(StartOfDay(t))
}

// MonthStart returns the start time of the month of the given time.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last instant of the month of the given time.
func MonthEnd(t time.Time) time.Time {
	return NextMonthStart(t).Add(-endOffset)
}

// NextMonthStart returns the start time of the next month.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

func YearStart(year int, loc *time.Location) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
}

func YearEnd(year int, loc *time.Location) time.Time {
	return YearStart(year+1, loc).Add(-endOffset)
}

// LastMonths returns the first day of the n months ending with month/year, oldest first.
func LastMonths(n int, month time.Month, year int, loc *time.Location) []time.Time {
	end := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	out := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, end.AddDate(0, -i, 0))
	}
	return out
}
