package clock

import (
	"time"
)

// Clock hands out the current calendar date. Validity and waiting-period rules
// read it through this interface only.
type Clock interface {
	Today() time.Time
}

// System reads the wall clock in a given location and returns the local date
// as a UTC midnight value.
type System struct {
	Location *time.Location
}

func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{Location: loc}
}

func (s System) Today() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Fixed always returns the same date.
type Fixed time.Time

func (f Fixed) Today() time.Time {
	t := time.Time(f)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
