package legacymock

import (
	"context"
	"time"

	domain "approvals-engine/internal/domain/legacy"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Finders default to no candidates.
type Repo struct {
	FindByIdentityFn  func(ctx context.Context, firstName, lastName string, birthdate time.Time) ([]domain.Approval, error)
	FindByBirthNameFn func(ctx context.Context, firstName, birthName string, birthdate time.Time) ([]domain.Approval, error)
}

func (m *Repo) FindByIdentity(ctx context.Context, firstName, lastName string, birthdate time.Time) ([]domain.Approval, error) {
	if m.FindByIdentityFn != nil {
		return m.FindByIdentityFn(ctx, firstName, lastName, birthdate)
	}
	return nil, nil
}

func (m *Repo) FindByBirthName(ctx context.Context, firstName, birthName string, birthdate time.Time) ([]domain.Approval, error) {
	if m.FindByBirthNameFn != nil {
		return m.FindByBirthNameFn(ctx, firstName, birthName, birthdate)
	}
	return nil, nil
}
