package resolver

import (
	"context"
	"errors"
	"time"

	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
	"approvals-engine/internal/domain/legacy"
	"approvals-engine/internal/domain/uow"
	"approvals-engine/internal/infrastructure/metrics"
	legacyuc "approvals-engine/internal/usecase/legacy"
	"approvals-engine/pkg/clock"

	"go.uber.org/zap"
)

// Resolver picks the single current approval of a person among internally
// issued approvals and legacy ones, and classifies the situation.
type Resolver struct {
	uow     uow.UnitOfWork
	clock   clock.Clock
	wait    approval.WaitingPeriod
	log     *zap.Logger
	metrics *metrics.Metrics
}

func New(tx uow.UnitOfWork, clk clock.Clock, wait approval.WaitingPeriod, log *zap.Logger, m *metrics.Metrics) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{uow: tx, clock: clk, wait: wait, log: log, metrics: m}
}

func (s *Resolver) WaitingPeriod() approval.WaitingPeriod { return s.wait }

func (s *Resolver) Today() time.Time { return s.clock.Today() }

// Resolve never writes.
func (s *Resolver) Resolve(ctx context.Context, p Person) (Result, error) {
	if s.uow == nil {
		return Result{}, ErrNoUnitOfWork
	}
	var res Result
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		res, err = s.resolve(ctx, r, p, s.clock.Today())
		return err
	})
	if err != nil {
		return Result{}, err
	}
	s.metrics.IncResolution(string(res.Code))
	s.log.Info("approval resolved",
		zap.String("owner_id", p.OwnerID),
		zap.String("code", string(res.Code)),
		zap.Int("legacy_candidates", len(res.Candidates)))
	return res, nil
}

func (s *Resolver) resolve(ctx context.Context, r uow.Repos, p Person, today time.Time) (Result, error) {
	internals, err := r.Approvals.ListByOwner(ctx, p.OwnerID)
	if err != nil {
		return Result{}, err
	}
	approval.SortByRelevance(internals)

	// 1. a valid internal approval wins outright
	if len(internals) > 0 && internals[0].IsValid(today) {
		return Result{Code: CodeFound, Approval: internals[0]}, nil
	}

	found, err := legacyuc.NewMatcher(r.Legacy).FindFor(ctx, p.FirstName, p.LastName, p.Birthdate)
	if err != nil {
		return Result{}, err
	}
	candidates := withoutCopied(found, internals)

	if len(internals) > 0 {
		latest := internals[0]
		best, hasLegacy := bestLegacy(candidates, today)
		// 2. a valid legacy approval covers the internal waiting period
		if hasLegacy && best.IsValid(today) && !s.wait.Elapsed(latest, today) {
			return Result{Code: CodeFound, Approval: best}, nil
		}
		// 3. best of both sources
		var pick approval.Common = latest
		if hasLegacy && moreRelevant(best, latest, today) {
			pick = best
		}
		return s.classify(pick, today), nil
	}

	switch len(candidates) {
	case 0:
		// 4.
		return Result{Code: CodeCanObtainNewApproval}, nil
	case 1:
		// 5.
		return s.classify(candidates[0], today), nil
	default:
		// 6. never guess
		return Result{Code: CodeMultipleResults, Candidates: candidates}, nil
	}
}

func (s *Resolver) classify(c approval.Common, today time.Time) Result {
	switch {
	case c.IsValid(today):
		return Result{Code: CodeFound, Approval: c}
	case !s.wait.Elapsed(c, today):
		return Result{Code: CodeCannotObtainNewApproval, Approval: c}
	default:
		return Result{Code: CodeCanObtainNewApproval, Approval: c}
	}
}

// withoutCopied drops legacy approvals already copied into the owner's internal ones.
func withoutCopied(found []legacy.Approval, internals []approval.Approval) []legacy.Approval {
	if len(internals) == 0 {
		return found
	}
	numbers := make(map[string]struct{}, len(internals))
	for _, a := range internals {
		numbers[a.Number] = struct{}{}
	}
	out := make([]legacy.Approval, 0, len(found))
	for _, l := range found {
		if _, copied := numbers[l.Number]; !copied {
			out = append(out, l)
		}
	}
	return out
}

// bestLegacy prefers a valid candidate, then the most relevant one.
func bestLegacy(candidates []legacy.Approval, today time.Time) (legacy.Approval, bool) {
	if len(candidates) == 0 {
		return legacy.Approval{}, false
	}
	sorted := append([]legacy.Approval(nil), candidates...)
	approval.SortByRelevance(sorted)
	for _, c := range sorted {
		if c.IsValid(today) {
			return c, true
		}
	}
	return sorted[0], true
}

// moreRelevant: a valid approval first, else the latest end date, ties going to
// the earliest start (the longest running one).
func moreRelevant(a, b approval.Common, today time.Time) bool {
	if av, bv := a.IsValid(today), b.IsValid(today); av != bv {
		return av
	}
	if !a.EndDate().Equal(b.EndDate()) {
		return a.EndDate().After(b.EndDate())
	}
	return a.StartDate().Before(b.StartDate())
}

// GetOrCreateApproval returns the person's valid internal approval, or copies
// their valid legacy approval into a new internal one.
func (s *Resolver) GetOrCreateApproval(ctx context.Context, p Person, createdBy string) (*approval.Approval, error) {
	if s.uow == nil {
		return nil, ErrNoUnitOfWork
	}
	today := s.clock.Today()
	var (
		out    *approval.Approval
		copied bool
	)
	err := s.uow.WithinOwnerTx(ctx, p.OwnerID, func(r uow.Repos) error {
		res, err := s.resolve(ctx, r, p, today)
		if err != nil {
			return err
		}
		switch {
		case res.Code == CodeMultipleResults:
			return ErrAmbiguousLegacyMatch
		case res.Code != CodeFound:
			return ErrNoValidApproval
		}

		switch found := res.Approval.(type) {
		case approval.Approval:
			out = &found
			return nil
		case legacy.Approval:
			// the owner's own copies were excluded by resolve, so a hit here
			// belongs to someone else
			taken, err := r.Approvals.GetByNumber(ctx, found.Number)
			switch {
			case err == nil:
				s.log.Warn("legacy number held by another owner",
					zap.String("number", found.Number),
					zap.String("owner_id", p.OwnerID),
					zap.String("holder_id", taken.OwnerID))
				return &approval.AlreadyExistsError{Number: found.Number}
			case !errors.Is(err, approval.ErrNotFound):
				return err
			}
			a := &approval.Approval{
				Number:    found.Number,
				OwnerID:   p.OwnerID,
				StartAt:   found.StartDate(),
				EndAt:     found.EndDate(),
				Origin:    approval.OriginLegacyCopy,
				CreatedBy: createdBy,
			}
			if err := r.Approvals.Create(ctx, a); err != nil {
				return err
			}
			out, copied = a, true
			return nil
		default:
			return ErrNoValidApproval
		}
	})
	if err != nil {
		s.log.Warn("get or create approval failed", zap.String("owner_id", p.OwnerID), zap.Error(err))
		return nil, err
	}
	if copied {
		s.metrics.IncApprovalCreated(string(approval.OriginLegacyCopy))
		s.log.Info("legacy approval copied",
			zap.Uint64("approval_id", out.ID),
			zap.String("number", out.Number),
			zap.String("owner_id", out.OwnerID),
			zap.String("end_at", out.EndDate().Format(interval.DateLayout)))
	}
	return out, nil
}
