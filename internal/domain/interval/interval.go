package interval

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateRange = errors.New("end date must be after start date")

// InvalidDateRangeError carries the rejected bounds.
type InvalidDateRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range %s..%s: end date must be after start date",
		e.Start.Format(DateLayout), e.End.Format(DateLayout))
}

func (e *InvalidDateRangeError) Unwrap() error { return ErrInvalidDateRange }

const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Bounds tells whether the upper date of a range belongs to it.
type Bounds int

const (
	// Closed is [start, end].
	Closed Bounds = iota
	// HalfOpen is [start, end).
	HalfOpen
)

func (b Bounds) InclusiveUpper() bool { return b == Closed }

// Date truncates t to its calendar date at 00:00 UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate is a shorthand for a UTC calendar date.
func NewDate(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Date(t), nil
}

// DaysBetween returns end - start in calendar days.
func DaysBetween(start, end time.Time) int {
	return int(Date(end).Sub(Date(start)) / day)
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time { return Date(t).AddDate(0, 0, n) }

// Overlaps is the interval intersection test. Lower bounds are always inclusive;
// inclusiveUpper decides whether two ranges that touch on an end date intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time, inclusiveUpper bool) bool {
	aStart, aEnd, bStart, bEnd = Date(aStart), Date(aEnd), Date(bStart), Date(bEnd)
	if inclusiveUpper {
		return !aStart.After(bEnd) && !bStart.After(aEnd)
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Validate rejects ranges whose end is not strictly after the start.
func Validate(start, end time.Time) error {
	if !Date(end).After(Date(start)) {
		return &InvalidDateRangeError{Start: Date(start), End: Date(end)}
	}
	return nil
}

// Range is a date range with explicit bound semantics.
type Range struct {
	Start  time.Time
	End    time.Time
	Bounds Bounds
}

func NewRange(start, end time.Time, b Bounds) Range {
	return Range{Start: Date(start), End: Date(end), Bounds: b}
}

// Validate checks that the range holds at least one day.
func (r Range) Validate() error {
	if r.Bounds == Closed {
		if Date(r.End).Before(Date(r.Start)) {
			return &InvalidDateRangeError{Start: r.Start, End: r.End}
		}
		return nil
	}
	return Validate(r.Start, r.End)
}

// Days is the number of calendar days covered by the range. A closed range
// counts both of its end dates, so [Jun 1, Jun 30] is 30 days.
func (r Range) Days() int {
	n := DaysBetween(r.Start, r.End)
	if r.Bounds == Closed {
		n++
	}
	return n
}

func (r Range) Overlaps(other Range) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End, r.Bounds.InclusiveUpper())
}

func (r Range) String() string {
	closing := "]"
	if r.Bounds == HalfOpen {
		closing = ")"
	}
	return "[" + r.Start.Format(DateLayout) + ", " + r.End.Format(DateLayout) + closing
}
