package approval

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts a new approval (the unique index on number guards double inserts)
	Create(ctx context.Context, a *Approval) error

	// UpdateEndAt is the only write path for end_at after creation.
	UpdateEndAt(ctx context.Context, id uint64, endAt time.Time) error

	GetByID(ctx context.Context, id uint64) (*Approval, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Approval, error)

	GetByNumber(ctx context.Context, number string) (*Approval, error)

	// ListByOwner returns the owner's approvals, latest end first, then
	// earliest start.
	ListByOwner(ctx context.Context, ownerID string) ([]Approval, error)

	// LastNumberForYear returns the highest 12-char number starting with
	// prefix + two-digit year, or "" when there is none.
	LastNumberForYear(ctx context.Context, prefix string, year int) (string, error)
}
