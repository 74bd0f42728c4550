package legacy

import (
	"context"
	"time"

	domain "approvals-engine/internal/domain/legacy"
	"approvals-engine/internal/domain/interval"
)

// Matcher finds legacy approvals for a person by exact match on normalized
// identity. There is no fuzzy distance; ambiguity is returned to the caller.
type Matcher struct {
	repo domain.Repository
}

func NewMatcher(repo domain.Repository) *Matcher { return &Matcher{repo: repo} }

// FindFor searches (first_name, last_name, birthdate), then retries with
// lastName as the birth name (maiden-name mismatches).
func (m *Matcher) FindFor(ctx context.Context, firstName, lastName string, birthdate time.Time) ([]domain.Approval, error) {
	first := domain.NameFormat(firstName)
	last := domain.NameFormat(lastName)
	if first == "" || last == "" || birthdate.IsZero() {
		return nil, nil
	}
	bd := interval.Date(birthdate)

	found, err := m.repo.FindByIdentity(ctx, first, last, bd)
	if err != nil || len(found) > 0 {
		return found, err
	}
	return m.repo.FindByBirthName(ctx, first, last, bd)
}
