package legacy

import (
	"time"

	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
)

// Approval is a record imported from the legacy provider. It is read-only here;
// the only write path is its copy into an approval.Approval.
// Table: legacy_approvals
type Approval struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Number string `gorm:"column:number;size:15;not null;uniqueIndex:ux_legacy_approvals_number"`
	// Code of the structure that delivered the approval (first 5 chars of the number).
	PEStructureCode string `gorm:"column:pe_structure_code;size:5"`
	PERegionalID    string `gorm:"column:pe_regional_id;size:8"`
	// Names are stored normalized (see NameFormat).
	FirstName string    `gorm:"column:first_name;size:255;not null;index:idx_legacy_identity"`
	LastName  string    `gorm:"column:last_name;size:255;not null;index:idx_legacy_identity"`
	BirthName string    `gorm:"column:birth_name;size:255;index:idx_legacy_birth_name"`
	Birthdate time.Time `gorm:"column:birthdate;type:date;not null;index:idx_legacy_identity;index:idx_legacy_birth_name"`
	StartAt   time.Time `gorm:"column:start_at;type:date;not null"`
	EndAt     time.Time `gorm:"column:end_at;type:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Approval) TableName() string { return "legacy_approvals" }

func (a Approval) ApprovalNumber() string { return a.Number }
func (a Approval) StartDate() time.Time { return interval.Date(a.StartAt) }
func (a Approval) EndDate() time.Time { return interval.Date(a.EndAt) }
func (a Approval) Source() approval.Source { return approval.SourceLegacy }

func (a Approval) IsValid(today time.Time) bool { return approval.IsValid(a, today) }

func (a Approval) TimeSinceEnd(today time.Time) interval.Span {
	return approval.TimeSinceEnd(a, today)
}

func (a Approval) CanObtainNewApproval(today time.Time) bool {
	return approval.DefaultWaitingPeriod.Elapsed(a, today)
}

// NumberAsExternalFormat renders the number the way the provider's export does:
// "XXXXX YY NNNNN", plus " SSS" for 15-char numbers. Other lengths are returned as is.
func (a Approval) NumberAsExternalFormat() string {
	n := a.Number
	switch len(n) {
	case 12:
		return n[:5] + " " + n[5:7] + " " + n[7:]
	case 15:
		return n[:5] + " " + n[5:7] + " " + n[7:12] + " " + n[12:]
	default:
		return n
	}
}

var _ approval.Common = Approval{}
var _ approval.Common = approval.Approval{}
