package adjustment

import (
	"time"

	"approvals-engine/internal/domain/interval"
)

// Adjustment is a suspension or a prolongation of an approval. Creating,
// editing or removing one moves the approval's end date by its length in days.
// Table: approval_adjustments
type Adjustment struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	PublicID string `gorm:"column:public_id;type:char(32);not null;uniqueIndex:ux_adjustments_public_id"`

	ApprovalID uint64    `gorm:"column:approval_id;not null;index:idx_adjustments_approval_kind"`
	Kind       Kind      `gorm:"column:kind;size:16;not null;index:idx_adjustments_approval_kind"`
	StartAt    time.Time `gorm:"column:start_at;type:date;not null"`
	EndAt      time.Time `gorm:"column:end_at;type:date;not null"`

	Reason            Reason `gorm:"column:reason;size:64;not null"`
	ReasonExplanation string `gorm:"column:reason_explanation;type:text"`

	CreatedBy string    `gorm:"column:created_by;size:64"`
	UpdatedBy string    `gorm:"column:updated_by;size:64"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Adjustment) TableName() string { return "approval_adjustments" }

func (a Adjustment) Range() interval.Range {
	return interval.NewRange(a.StartAt, a.EndAt, a.Kind.Bounds())
}

// Days is how far the adjustment moves the approval's end date.
func (a Adjustment) Days() int { return a.Range().Days() }
