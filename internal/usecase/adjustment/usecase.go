package adjustment

import (
	"context"
	"errors"
	"time"

	domain "approvals-engine/internal/domain/adjustment"
	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
	"approvals-engine/internal/domain/uow"
	"approvals-engine/internal/infrastructure/metrics"
	"approvals-engine/pkg/clock"
	"approvals-engine/pkg/id"

	"go.uber.org/zap"
)

var ErrNoUnitOfWork = errors.New("adjustment usecase: no unit of work")

const (
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
)

// Usecase keeps approval.end_at equal to its base end date plus the days of all
// its adjustments. Every write runs in one transaction holding the approval row
// lock: validate, check overlap, write the adjustment, shift end_at.
type Usecase struct {
	uow     uow.UnitOfWork
	clock   clock.Clock
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, clock: clk, log: log, metrics: m}
}

func (u *Usecase) Insert(ctx context.Context, in InsertInput) (*AdjustmentDTO, error) {
	if u.uow == nil {
		return nil, ErrNoUnitOfWork
	}
	adj := &domain.Adjustment{
		PublicID:          id.NewID32(),
		ApprovalID:        in.ApprovalID,
		Kind:              in.Kind,
		StartAt:           interval.Date(in.StartAt),
		EndAt:             interval.Date(in.EndAt),
		Reason:            in.Reason,
		ReasonExplanation: in.ReasonExplanation,
		CreatedBy:         in.Actor,
		UpdatedBy:         in.Actor,
	}
	today := u.clock.Today()

	var newEnd time.Time
	err := u.uow.WithinApprovalTx(ctx, in.ApprovalID, func(r uow.Repos, a *approval.Approval) error {
		if err := checkRules(adj, a, today); err != nil {
			return err
		}
		others, err := r.Adjustments.ListByApproval(ctx, a.ID, adj.Kind)
		if err != nil {
			return err
		}
		if err := checkOverlap(adj, others); err != nil {
			return err
		}
		if err := r.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		newEnd, err = shiftEnd(ctx, r, a, adj.Days())
		return err
	})
	if err != nil {
		u.rejected(string(in.Kind), opInsert, in.ApprovalID, err)
		return nil, err
	}
	u.applied(adj, opInsert, in.Actor, newEnd)
	return toDTO(adj, newEnd), nil
}

func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*AdjustmentDTO, error) {
	if u.uow == nil {
		return nil, ErrNoUnitOfWork
	}
	approvalID, err := u.approvalOf(ctx, in.PublicID)
	if err != nil {
		u.rejected("", opUpdate, 0, err)
		return nil, err
	}
	today := u.clock.Today()

	var (
		adj    *domain.Adjustment
		newEnd time.Time
	)
	err = u.uow.WithinApprovalTx(ctx, approvalID, func(r uow.Repos, a *approval.Approval) error {
		// re-read under the approval lock
		cur, err := r.Adjustments.GetByPublicID(ctx, in.PublicID)
		if err != nil {
			return err
		}
		oldDays := cur.Days()

		cur.StartAt = interval.Date(in.StartAt)
		cur.EndAt = interval.Date(in.EndAt)
		cur.Reason = in.Reason
		cur.ReasonExplanation = in.ReasonExplanation
		cur.UpdatedBy = in.Actor
		adj = cur

		if err := checkRules(cur, a, today); err != nil {
			return err
		}
		others, err := r.Adjustments.ListByApproval(ctx, a.ID, cur.Kind)
		if err != nil {
			return err
		}
		if err := checkOverlap(cur, others); err != nil {
			return err
		}
		if err := r.Adjustments.Save(ctx, cur); err != nil {
			return err
		}
		// one combined delta, never delete-then-insert
		newEnd, err = shiftEnd(ctx, r, a, cur.Days()-oldDays)
		return err
	})
	if err != nil {
		kind := ""
		if adj != nil {
			kind = string(adj.Kind)
		}
		u.rejected(kind, opUpdate, approvalID, err)
		return nil, err
	}
	u.applied(adj, opUpdate, in.Actor, newEnd)
	return toDTO(adj, newEnd), nil
}

func (u *Usecase) Delete(ctx context.Context, in DeleteInput) (*AdjustmentDTO, error) {
	if u.uow == nil {
		return nil, ErrNoUnitOfWork
	}
	approvalID, err := u.approvalOf(ctx, in.PublicID)
	if err != nil {
		u.rejected("", opDelete, 0, err)
		return nil, err
	}

	var (
		adj    *domain.Adjustment
		newEnd time.Time
	)
	err = u.uow.WithinApprovalTx(ctx, approvalID, func(r uow.Repos, a *approval.Approval) error {
		cur, err := r.Adjustments.GetByPublicID(ctx, in.PublicID)
		if err != nil {
			return err
		}
		adj = cur
		if err := r.Adjustments.Delete(ctx, cur); err != nil {
			return err
		}
		newEnd, err = shiftEnd(ctx, r, a, -cur.Days())
		return err
	})
	if err != nil {
		u.rejected("", opDelete, approvalID, err)
		return nil, err
	}
	u.applied(adj, opDelete, in.Actor, newEnd)
	return toDTO(adj, newEnd), nil
}

// List returns the adjustments of an approval; an empty kind lists both kinds.
func (u *Usecase) List(ctx context.Context, approvalID uint64, kind domain.Kind) ([]AdjustmentDTO, error) {
	if u.uow == nil {
		return nil, ErrNoUnitOfWork
	}
	if kind != "" && !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	var out []AdjustmentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Approvals.GetByID(ctx, approvalID); err != nil {
			return err
		}
		rows, err := r.Adjustments.ListByApproval(ctx, approvalID, kind)
		if err != nil {
			return err
		}
		out = make([]AdjustmentDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *toDTO(&rows[i], time.Time{}))
		}
		return nil
	})
	return out, err
}

// approvalOf resolves the owning approval before its lock is taken.
// The approval of an adjustment never changes, so the lookup may run unlocked.
func (u *Usecase) approvalOf(ctx context.Context, publicID string) (uint64, error) {
	var approvalID uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		adj, err := r.Adjustments.GetByPublicID(ctx, publicID)
		if err != nil {
			return err
		}
		approvalID = adj.ApprovalID
		return nil
	})
	return approvalID, err
}

// shiftEnd moves the locked approval's end date by delta days.
func shiftEnd(ctx context.Context, r uow.Repos, a *approval.Approval, delta int) (time.Time, error) {
	end := interval.AddDays(a.EndDate(), delta)
	if delta == 0 {
		return end, nil
	}
	if err := r.Approvals.UpdateEndAt(ctx, a.ID, end); err != nil {
		return time.Time{}, err
	}
	a.EndAt = end
	return end, nil
}

func (u *Usecase) applied(adj *domain.Adjustment, op, actor string, newEnd time.Time) {
	u.metrics.IncAdjustmentApplied(string(adj.Kind), op)
	u.log.Info("adjustment applied",
		zap.String("operation", op),
		zap.String("kind", string(adj.Kind)),
		zap.String("adjustment_id", adj.PublicID),
		zap.Uint64("approval_id", adj.ApprovalID),
		zap.String("range", adj.Range().String()),
		zap.Int("days", adj.Days()),
		zap.String("approval_end_at", newEnd.Format(interval.DateLayout)),
		zap.String("actor", actor))
}

func (u *Usecase) rejected(kind, op string, approvalID uint64, err error) {
	reason := rejectionReason(err)
	u.metrics.IncAdjustmentRejected(kind, reason)
	u.log.Warn("adjustment rejected",
		zap.String("operation", op),
		zap.String("kind", kind),
		zap.Uint64("approval_id", approvalID),
		zap.String("reason", reason),
		zap.Error(err))
}
