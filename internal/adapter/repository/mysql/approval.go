package mysql

import (
	"context"
	"errors"
	"time"

	approvalDomain "approvals-engine/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &approvalDomain.AlreadyExistsError{Number: a.Number}
		}
		return err
	}
	return nil
}

func (r *ApprovalRepository) UpdateEndAt(ctx context.Context, id uint64, endAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&approvalDomain.Approval{}).
		Where("id = ?", id).
		Update("end_at", endAt).Error
}

func (r *ApprovalRepository) GetByID(ctx context.Context, id uint64) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByIDForUpdate row-locks the approval until the surrounding tx ends.
func (r *ApprovalRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApprovalRepository) GetByNumber(ctx context.Context, number string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).Where("number = ?", number).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApprovalRepository) ListByOwner(ctx context.Context, ownerID string) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("end_at DESC, start_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *ApprovalRepository) LastNumberForYear(ctx context.Context, prefix string, year int) (string, error) {
	head := approvalDomain.NumberHead(prefix, year)
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Select("number").
		Where("number LIKE ? AND LENGTH(number) = ?", head+"%", approvalDomain.IssuedLen).
		Order("number DESC").
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return "", res.Error
	}
	return out.Number, nil
}
