package adjustment

import (
	"errors"
	"time"

	domain "approvals-engine/internal/domain/adjustment"
	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
)

// checkRules validates one adjustment against its approval and today's date.
func checkRules(adj *domain.Adjustment, a *approval.Approval, today time.Time) error {
	if !adj.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	if err := adj.Kind.ValidateReason(adj.Reason); err != nil {
		return err
	}
	r := adj.Range()
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Start.Before(a.StartDate()) {
		return domain.ErrStartsBeforeApproval
	}
	switch adj.Kind {
	case domain.KindSuspension:
		if r.Start.After(interval.Date(today)) {
			return domain.ErrSuspensionInFuture
		}
	case domain.KindProlongation:
		if months := domain.MaxMonths(adj.Reason); months > 0 {
			maxEnd := interval.AddMonths(r.Start, months)
			if r.End.After(maxEnd) {
				return &domain.DurationExceededError{Reason: adj.Reason, MaxMonths: months, MaxEnd: maxEnd}
			}
		}
	}
	return nil
}

// checkOverlap rejects adj when it intersects another adjustment of the same kind.
// others may contain adj itself (matched by ID) on update.
func checkOverlap(adj *domain.Adjustment, others []domain.Adjustment) error {
	r := adj.Range()
	for _, o := range others {
		if o.Kind != adj.Kind || (adj.ID != 0 && o.ID == adj.ID) {
			continue
		}
		if r.Overlaps(o.Range()) {
			return &domain.OverlappingAdjustmentError{
				Kind:       o.Kind,
				ConflictID: o.PublicID,
				Start:      interval.Date(o.StartAt),
				End:        interval.Date(o.EndAt),
			}
		}
	}
	return nil
}

// rejectionReason is the metrics label of a failed write.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOverlapping):
		return "overlap"
	case errors.Is(err, interval.ErrInvalidDateRange):
		return "date_range"
	case errors.Is(err, domain.ErrInvalidKind), errors.Is(err, domain.ErrInvalidReason),
		errors.Is(err, domain.ErrStartsBeforeApproval), errors.Is(err, domain.ErrSuspensionInFuture),
		errors.Is(err, domain.ErrDurationExceeded):
		return "rule"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, approval.ErrNotFound):
		return "not_found"
	default:
		return "store"
	}
}
