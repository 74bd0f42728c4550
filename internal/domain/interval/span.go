package interval

import "time"

// Span is a calendar difference, like a relativedelta.
// All fields share the sign of the difference.
type Span struct {
	Years  int
	Months int
	Days   int
}

// Diff returns the calendar difference to - from.
func Diff(from, to time.Time) Span {
	from, to = Date(from), Date(to)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anchor := addMonthsClamped(from, months)
	if anchor.After(to) {
		months--
		anchor = addMonthsClamped(from, months)
	}
	days := DaysBetween(anchor, to)

	return Span{
		Years:  sign * (months / 12),
		Months: sign * (months % 12),
		Days:   sign * days,
	}
}

// addMonthsClamped adds n months and clamps the day to the target month length
// (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	d := t.Day()
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddYears shifts a date by n years, clamping Feb 29 to Feb 28.
func AddYears(t time.Time, n int) time.Time { return addMonthsClamped(Date(t), 12*n) }

// AddMonths shifts a date by n months, clamping to the target month length.
func AddMonths(t time.Time, n int) time.Time { return addMonthsClamped(Date(t), n) }
