package approvalmock

import (
	"context"
	"time"

	domain "approvals-engine/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error, reads to context.Canceled.
type Repo struct {
	CreateFn            func(ctx context.Context, a *domain.Approval) error
	UpdateEndAtFn       func(ctx context.Context, id uint64, endAt time.Time) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Approval, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Approval, error)
	GetByNumberFn       func(ctx context.Context, number string) (*domain.Approval, error)
	ListByOwnerFn       func(ctx context.Context, ownerID string) ([]domain.Approval, error)
	LastNumberForYearFn func(ctx context.Context, prefix string, year int) (string, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) UpdateEndAt(ctx context.Context, id uint64, endAt time.Time) error {
	if m.UpdateEndAtFn != nil {
		return m.UpdateEndAtFn(ctx, id, endAt)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Approval, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Approval, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByNumber(ctx context.Context, number string) (*domain.Approval, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Approval, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, context.Canceled
}

func (m *Repo) LastNumberForYear(ctx context.Context, prefix string, year int) (string, error) {
	if m.LastNumberForYearFn != nil {
		return m.LastNumberForYearFn(ctx, prefix, year)
	}
	return "", context.Canceled
}
