package approval

import (
	"context"
	"errors"
	"strings"

	domainApproval "approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
	"approvals-engine/internal/domain/uow"
	"approvals-engine/internal/infrastructure/metrics"
	"approvals-engine/pkg/clock"

	"go.uber.org/zap"
)

const dateLayout = interval.DateLayout

var ErrNoUnitOfWork = errors.New("approval usecase: no unit of work")

type Usecase struct {
	uow     uow.UnitOfWork
	clock   clock.Clock
	prefix  string
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewUsecase: prefix is the issuing authority prefix of allocated numbers.
func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, prefix string, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	if prefix == "" {
		prefix = domainApproval.DefaultIssuingPrefix
	}
	return &Usecase{uow: tx, clock: clk, prefix: prefix, log: log, metrics: m}
}

// Issue creates a new approval for an owner. The owner lock serializes concurrent
// creators so the "one valid or upcoming approval" check holds until commit.
func (u *Usecase) Issue(ctx context.Context, in IssueInput) (*ApprovalDTO, error) {
	if u.uow == nil {
		return nil, ErrNoUnitOfWork
	}
	a := &domainApproval.Approval{
		OwnerID:   in.OwnerID,
		StartAt:   interval.Date(in.StartAt),
		EndAt:     interval.Date(in.EndAt),
		Origin:    domainApproval.OriginIssued,
		CreatedBy: in.CreatedBy,
	}
	if in.EndAt.IsZero() {
		a.EndAt = domainApproval.DefaultEndDate(a.StartAt)
	}
	if err := a.ValidateDates(); err != nil {
		return nil, err
	}
	if in.Number != "" {
		if err := domainApproval.ValidateNumber(in.Number); err != nil {
			return nil, err
		}
		if strings.HasPrefix(in.Number, u.prefix) {
			return nil, domainApproval.ErrReservedNumberPrefix
		}
	}

	today := u.clock.Today()
	err := u.uow.WithinOwnerTx(ctx, in.OwnerID, func(r uow.Repos) error {
		existing, err := r.Approvals.ListByOwner(ctx, in.OwnerID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.IsValid(today) {
				return &domainApproval.DuplicateActiveApprovalError{OwnerID: in.OwnerID, ExistingNumber: e.Number}
			}
		}

		a.Number = in.Number
		if a.Number == "" {
			n, err := u.allocate(ctx, r, a.StartAt.Year())
			if err != nil {
				return err
			}
			a.Number = n
		}
		return r.Approvals.Create(ctx, a)
	})
	if err != nil {
		u.log.Warn("approval issue rejected",
			zap.String("owner_id", in.OwnerID), zap.Error(err))
		return nil, err
	}

	u.metrics.IncApprovalCreated(string(a.Origin))
	u.log.Info("approval issued",
		zap.Uint64("approval_id", a.ID),
		zap.String("number", a.Number),
		zap.String("owner_id", a.OwnerID),
		zap.String("start_at", a.StartDate().Format(dateLayout)),
		zap.String("end_at", a.EndDate().Format(dateLayout)))
	return ToDTO(a), nil
}

// allocate takes the per-year number lock, then reads the highest number of the year.
func (u *Usecase) allocate(ctx context.Context, r uow.Repos, year int) (string, error) {
	if err := r.Locks.Acquire(ctx, uow.NumberLockKey(domainApproval.NumberHead(u.prefix, year))); err != nil {
		return "", err
	}
	last, err := r.Approvals.LastNumberForYear(ctx, u.prefix, year)
	if err != nil {
		return "", err
	}
	return domainApproval.NextNumber(last, u.prefix, year)
}

// NextNumber returns the number the next issued approval starting in year would get.
// Nothing is reserved.
func (u *Usecase) NextNumber(ctx context.Context, year int) (string, error) {
	if u.uow == nil {
		return "", ErrNoUnitOfWork
	}
	var out string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		last, err := r.Approvals.LastNumberForYear(ctx, u.prefix, year)
		if err != nil {
			return err
		}
		out, err = domainApproval.NextNumber(last, u.prefix, year)
		return err
	})
	return out, err
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ApprovalDTO, error) {
	if u.uow == nil {
		return nil, ErrNoUnitOfWork
	}
	var out *ApprovalDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Approvals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out = ToDTO(a)
		return nil
	})
	return out, err
}
