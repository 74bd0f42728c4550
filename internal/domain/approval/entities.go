package approval

import (
	"time"

	"approvals-engine/internal/domain/interval"
)

type Origin string

const (
	OriginIssued     Origin = "issued"
	OriginLegacyCopy Origin = "legacy_copy"
)

// Table: approvals
type Approval struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Issued numbers are 12 chars; numbers copied from a legacy approval may carry a 3-char suffix.
	Number    string    `gorm:"column:number;size:15;not null;uniqueIndex:ux_approvals_number"`
	OwnerID   string    `gorm:"column:owner_id;size:64;not null;index:idx_approvals_owner_start"`
	StartAt   time.Time `gorm:"column:start_at;type:date;not null;index:idx_approvals_owner_start"`
	EndAt     time.Time `gorm:"column:end_at;type:date;not null;index:idx_approvals_end_at"`
	Origin    Origin    `gorm:"column:origin;size:16;not null"`
	CreatedBy string    `gorm:"column:created_by;size:64"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Approval) TableName() string { return "approvals" }

func (a Approval) ApprovalNumber() string { return a.Number }
func (a Approval) StartDate() time.Time { return interval.Date(a.StartAt) }
func (a Approval) EndDate() time.Time { return interval.Date(a.EndAt) }
func (a Approval) Source() Source { return SourceInternal }

func (a Approval) IsValid(today time.Time) bool { return IsValid(a, today) }

func (a Approval) TimeSinceEnd(today time.Time) interval.Span { return TimeSinceEnd(a, today) }

func (a Approval) CanObtainNewApproval(today time.Time) bool {
	return DefaultWaitingPeriod.Elapsed(a, today)
}

func (a Approval) IsInWaitingPeriod(today time.Time) bool {
	return DefaultWaitingPeriod.InWaitingPeriod(a, today)
}

// ValidateDates enforces end_at > start_at.
func (a Approval) ValidateDates() error { return interval.Validate(a.StartAt, a.EndAt) }

// DefaultDurationYears is the length of a newly issued approval.
const DefaultDurationYears = 2

// DefaultEndDate is the day before the start date's anniversary DefaultDurationYears later.
func DefaultEndDate(start time.Time) time.Time {
	return interval.AddDays(interval.AddYears(start, DefaultDurationYears), -1)
}
