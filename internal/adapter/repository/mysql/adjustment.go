package mysql

import (
	"context"
	"fmt"

	adjustmentDomain "approvals-engine/internal/domain/adjustment"

	"gorm.io/gorm"
)

type AdjustmentRepository struct{ db *gorm.DB }

func NewAdjustmentRepository(db *gorm.DB) *AdjustmentRepository {
	return &AdjustmentRepository{db: db}
}

func (r *AdjustmentRepository) Create(ctx context.Context, a *adjustmentDomain.Adjustment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdjustmentRepository) Save(ctx context.Context, a *adjustmentDomain.Adjustment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AdjustmentRepository) Delete(ctx context.Context, a *adjustmentDomain.Adjustment) error {
	res := r.db.WithContext(ctx).Delete(&adjustmentDomain.Adjustment{}, a.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", adjustmentDomain.ErrNotFound, a.PublicID)
	}
	return nil
}

func (r *AdjustmentRepository) GetByPublicID(ctx context.Context, publicID string) (*adjustmentDomain.Adjustment, error) {
	var out adjustmentDomain.Adjustment
	res := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, adjustmentDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *AdjustmentRepository) ListByApproval(ctx context.Context, approvalID uint64, kind adjustmentDomain.Kind) ([]adjustmentDomain.Adjustment, error) {
	var out []adjustmentDomain.Adjustment
	q := r.db.WithContext(ctx).Where("approval_id = ?", approvalID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Order("start_at ASC, id ASC").Find(&out).Error
	return out, err
}
