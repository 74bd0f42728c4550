package adjustmentmock

import (
	"context"

	domain "approvals-engine/internal/domain/adjustment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, a *domain.Adjustment) error
	SaveFn           func(ctx context.Context, a *domain.Adjustment) error
	DeleteFn         func(ctx context.Context, a *domain.Adjustment) error
	GetByPublicIDFn  func(ctx context.Context, publicID string) (*domain.Adjustment, error)
	ListByApprovalFn func(ctx context.Context, approvalID uint64, kind domain.Kind) ([]domain.Adjustment, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Adjustment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Adjustment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, a *domain.Adjustment) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByPublicID(ctx context.Context, publicID string) (*domain.Adjustment, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, publicID)
	}
	return nil, context.Canceled
}

// ListByApproval defaults to no rows.
func (m *Repo) ListByApproval(ctx context.Context, approvalID uint64, kind domain.Kind) ([]domain.Adjustment, error) {
	if m.ListByApprovalFn != nil {
		return m.ListByApprovalFn(ctx, approvalID, kind)
	}
	return nil, nil
}
