package resolver

import (
	"time"

	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
	"approvals-engine/internal/domain/legacy"
)

// Code classifies a person's approval situation.
type Code string

const (
	CodeFound                   Code = "FOUND"
	CodeCanObtainNewApproval    Code = "CAN_OBTAIN_NEW_APPROVAL"
	CodeCannotObtainNewApproval Code = "CANNOT_OBTAIN_NEW_APPROVAL"
	CodeMultipleResults         Code = "MULTIPLE_RESULTS"
)

type Person struct {
	OwnerID   string
	FirstName string
	LastName  string
	Birthdate time.Time
}

// Result is the outcome of Resolve. Approval is nil for CAN_OBTAIN_NEW_APPROVAL
// when nothing was found and for MULTIPLE_RESULTS, where Candidates holds every match.
type Result struct {
	Code       Code
	Approval   approval.Common
	Candidates []legacy.Approval
}

type ApprovalView struct {
	Number          string `json:"number"`
	ExternalNumber  string `json:"external_number,omitempty"`
	Source          string `json:"source"`
	StartAt         string `json:"start_at"`
	EndAt           string `json:"end_at"`
	IsValid         bool   `json:"is_valid"`
	InWaitingPeriod bool   `json:"in_waiting_period"`
	// Time elapsed since the end date, negative while the approval runs.
	SinceEnd SpanView `json:"since_end"`
}

type SpanView struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

type ResultDTO struct {
	Code       string         `json:"code"`
	Approval   *ApprovalView  `json:"approval,omitempty"`
	Candidates []ApprovalView `json:"candidates,omitempty"`
}

func view(c approval.Common, wp approval.WaitingPeriod, today time.Time) ApprovalView {
	s := c.TimeSinceEnd(today)
	v := ApprovalView{
		Number:          c.ApprovalNumber(),
		Source:          string(c.Source()),
		StartAt:         c.StartDate().Format(interval.DateLayout),
		EndAt:           c.EndDate().Format(interval.DateLayout),
		IsValid:         c.IsValid(today),
		InWaitingPeriod: wp.InWaitingPeriod(c, today),
		SinceEnd:        SpanView{Years: s.Years, Months: s.Months, Days: s.Days},
	}
	if l, ok := c.(legacy.Approval); ok {
		v.ExternalNumber = l.NumberAsExternalFormat()
	}
	return v
}

// ToDTO renders a Result as seen on the given day.
func ToDTO(r Result, wp approval.WaitingPeriod, today time.Time) *ResultDTO {
	out := &ResultDTO{Code: string(r.Code)}
	if r.Approval != nil {
		v := view(r.Approval, wp, today)
		out.Approval = &v
	}
	for _, c := range r.Candidates {
		out.Candidates = append(out.Candidates, view(c, wp, today))
	}
	return out
}
