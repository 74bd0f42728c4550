package adjustment

import (
	"errors"
	"fmt"
	"time"

	"approvals-engine/internal/domain/interval"
)

var (
	ErrNotFound    = errors.New("adjustment not found")
	ErrOverlapping = errors.New("adjustment overlaps an existing one")

	ErrInvalidKind          = errors.New("invalid adjustment kind")
	ErrInvalidReason        = errors.New("invalid adjustment reason")
	ErrStartsBeforeApproval = errors.New("adjustment starts before the approval")
	ErrSuspensionInFuture   = errors.New("suspension cannot start in the future")
	ErrDurationExceeded     = errors.New("prolongation exceeds the maximum duration for its reason")
)

// OverlappingAdjustmentError names the stored adjustment that conflicts.
type OverlappingAdjustmentError struct {
	Kind       Kind
	ConflictID string
	Start      time.Time
	End        time.Time
}

func (e *OverlappingAdjustmentError) Error() string {
	return fmt.Sprintf("%s overlaps existing %s %s (%s)", e.Kind, e.Kind,
		interval.NewRange(e.Start, e.End, e.Kind.Bounds()), e.ConflictID)
}

func (e *OverlappingAdjustmentError) Unwrap() error { return ErrOverlapping }

// DurationExceededError reports the cap that was hit.
type DurationExceededError struct {
	Reason    Reason
	MaxMonths int
	MaxEnd    time.Time
}

func (e *DurationExceededError) Error() string {
	return fmt.Sprintf("%s prolongation is limited to %d months (end at most %s)",
		e.Reason, e.MaxMonths, e.MaxEnd.Format(interval.DateLayout))
}

func (e *DurationExceededError) Unwrap() error { return ErrDurationExceeded }
