package approval

import (
	"time"

	domainApproval "approvals-engine/internal/domain/approval"
)

type IssueInput struct {
	OwnerID string
	StartAt time.Time
	// EndAt defaults to approval.DefaultEndDate(StartAt) when zero.
	EndAt time.Time
	// Number is allocated when empty. Manual numbers must not use the issuing prefix.
	Number    string
	CreatedBy string
}

type ApprovalDTO struct {
	ID        uint64    `json:"id"`
	Number    string    `json:"number"`
	OwnerID   string    `json:"owner_id"`
	StartAt   string    `json:"start_at"`
	EndAt     string    `json:"end_at"`
	Origin    string    `json:"origin"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDTO(a *domainApproval.Approval) *ApprovalDTO {
	return &ApprovalDTO{
		ID:        a.ID,
		Number:    a.Number,
		OwnerID:   a.OwnerID,
		StartAt:   a.StartDate().Format(dateLayout),
		EndAt:     a.EndDate().Format(dateLayout),
		Origin:    string(a.Origin),
		CreatedAt: a.CreatedAt,
	}
}
