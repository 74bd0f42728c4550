package mysql

import (
	"context"

	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/uow"

	"gorm.io/gorm"
)

var _ uow.UnitOfWork = (*GormUoW)(nil)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Approvals:   &ApprovalRepository{db: tx},
		Adjustments: &AdjustmentRepository{db: tx},
		Legacy:      &LegacyRepository{db: tx},
		Locks:       &LockRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApprovalTx(ctx context.Context, approvalID uint64, fn func(r uow.Repos, a *approval.Approval) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the approval row up-front so adjustment writers serialize on it
		a, err := r.Approvals.GetByIDForUpdate(ctx, approvalID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

func (u *GormUoW) WithinOwnerTx(ctx context.Context, ownerID string, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		if err := r.Locks.Acquire(ctx, uow.OwnerLockKey(ownerID)); err != nil {
			return err
		}
		return fn(r)
	})
}
