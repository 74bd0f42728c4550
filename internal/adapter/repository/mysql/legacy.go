package mysql

import (
	"context"
	"time"

	legacyDomain "approvals-engine/internal/domain/legacy"
	"approvals-engine/internal/domain/interval"

	"gorm.io/gorm"
)

// LegacyRepository reads the imported legacy_approvals table.
type LegacyRepository struct{ db *gorm.DB }

func NewLegacyRepository(db *gorm.DB) *LegacyRepository { return &LegacyRepository{db: db} }

func (r *LegacyRepository) FindByIdentity(ctx context.Context, firstName, lastName string, birthdate time.Time) ([]legacyDomain.Approval, error) {
	var out []legacyDomain.Approval
	err := r.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ? AND birthdate = ?", firstName, lastName, interval.Date(birthdate)).
		Order("end_at DESC, start_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *LegacyRepository) FindByBirthName(ctx context.Context, firstName, birthName string, birthdate time.Time) ([]legacyDomain.Approval, error) {
	var out []legacyDomain.Approval
	err := r.db.WithContext(ctx).
		Where("first_name = ? AND birth_name = ? AND birthdate = ?", firstName, birthName, interval.Date(birthdate)).
		Order("end_at DESC, start_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
