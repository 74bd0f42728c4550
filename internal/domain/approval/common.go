package approval

import (
	"sort"
	"time"

	"approvals-engine/internal/domain/interval"
)

// Source tells where an approval-like record comes from.
type Source string

const (
	SourceInternal Source = "internal"
	SourceLegacy   Source = "legacy"
)

// Common is what internally issued and legacy approvals share. The resolver only
// works on this interface.
type Common interface {
	ApprovalNumber() string
	StartDate() time.Time
	EndDate() time.Time
	Source() Source
	IsValid(today time.Time) bool
	TimeSinceEnd(today time.Time) interval.Span
	CanObtainNewApproval(today time.Time) bool
}

type dated interface {
	StartDate() time.Time
	EndDate() time.Time
}

// IsValid is true while the approval runs, and for any approval that has not started yet.
func IsValid(a dated, today time.Time) bool {
	today = interval.Date(today)
	start, end := a.StartDate(), a.EndDate()
	if !start.After(today) && !today.After(end) {
		return true
	}
	return start.After(today)
}

func TimeSinceEnd(a dated, today time.Time) interval.Span {
	return interval.Diff(a.EndDate(), today)
}

// WaitingPeriod is the cooldown after expiry during which no new approval is issued.
type WaitingPeriod struct {
	Years int
}

const DefaultWaitingPeriodYears = 2

var DefaultWaitingPeriod = WaitingPeriod{Years: DefaultWaitingPeriodYears}

// Elapsed is true once strictly more than Years have passed since the end date.
func (w WaitingPeriod) Elapsed(a dated, today time.Time) bool {
	return interval.Date(today).After(interval.AddYears(a.EndDate(), w.Years))
}

func (w WaitingPeriod) InWaitingPeriod(a dated, today time.Time) bool {
	return !IsValid(a, today) && !w.Elapsed(a, today)
}

// SortByRelevance orders approvals the way the "latest" one is picked:
// latest end date first, then earliest start date (the longest running one).
func SortByRelevance[T dated](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		ei, ej := items[i].EndDate(), items[j].EndDate()
		if !ei.Equal(ej) {
			return ei.After(ej)
		}
		return items[i].StartDate().Before(items[j].StartDate())
	})
}
