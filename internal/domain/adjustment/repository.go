package adjustment

import "context"

type Repository interface {
	Create(ctx context.Context, a *Adjustment) error
	Save(ctx context.Context, a *Adjustment) error
	Delete(ctx context.Context, a *Adjustment) error
	GetByPublicID(ctx context.Context, publicID string) (*Adjustment, error)
	// ListByApproval returns the adjustments of one kind ordered by start date.
	// An empty kind lists both.
	ListByApproval(ctx context.Context, approvalID uint64, kind Kind) ([]Adjustment, error)
}
