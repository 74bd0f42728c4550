package adjustment

import (
	"time"

	domain "approvals-engine/internal/domain/adjustment"
	"approvals-engine/internal/domain/interval"
)

type InsertInput struct {
	ApprovalID        uint64
	Kind              domain.Kind
	StartAt           time.Time
	EndAt             time.Time
	Reason            domain.Reason
	ReasonExplanation string
	Actor             string
}

// UpdateInput replaces the range and reason of an existing adjustment.
// The kind and the owning approval never change.
type UpdateInput struct {
	PublicID          string
	StartAt           time.Time
	EndAt             time.Time
	Reason            domain.Reason
	ReasonExplanation string
	Actor             string
}

type DeleteInput struct {
	PublicID string
	Actor    string
}

type AdjustmentDTO struct {
	ID                string `json:"id"`
	ApprovalID        uint64 `json:"approval_id"`
	Kind              string `json:"kind"`
	StartAt           string `json:"start_at"`
	EndAt             string `json:"end_at"`
	Days              int    `json:"days"`
	Reason            string `json:"reason"`
	ReasonExplanation string `json:"reason_explanation,omitempty"`
	// End date of the approval once the write is applied.
	ApprovalEndAt string `json:"approval_end_at,omitempty"`
}

func toDTO(a *domain.Adjustment, approvalEnd time.Time) *AdjustmentDTO {
	dto := &AdjustmentDTO{
		ID:                a.PublicID,
		ApprovalID:        a.ApprovalID,
		Kind:              string(a.Kind),
		StartAt:           interval.Date(a.StartAt).Format(interval.DateLayout),
		EndAt:             interval.Date(a.EndAt).Format(interval.DateLayout),
		Days:              a.Days(),
		Reason:            string(a.Reason),
		ReasonExplanation: a.ReasonExplanation,
	}
	if !approvalEnd.IsZero() {
		dto.ApprovalEndAt = approvalEnd.Format(interval.DateLayout)
	}
	return dto
}
