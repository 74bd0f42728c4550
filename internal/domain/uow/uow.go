package uow

import (
	"context"

	"approvals-engine/internal/domain/adjustment"
	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/legacy"
)

// Repos are bound to the running transaction.
type Repos struct {
	Approvals   approval.Repository
	Adjustments adjustment.Repository
	Legacy      legacy.Repository
	Locks       Locker
}

// Locker serializes writers on a named key until the transaction ends.
type Locker interface {
	Acquire(ctx context.Context, key string) error
}

func OwnerLockKey(ownerID string) string { return "owner:" + ownerID }

// NumberLockKey is per issuing prefix and two-digit year, e.g. "number:9999924".
func NumberLockKey(head string) string { return "number:" + head }

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the approval row first, then pass it in
	WithinApprovalTx(ctx context.Context, approvalID uint64, fn func(r Repos, a *approval.Approval) error) error
	// take the owner lock first
	WithinOwnerTx(ctx context.Context, ownerID string, fn func(r Repos) error) error
}
