package adjustment

import (
	"fmt"

	"approvals-engine/internal/domain/interval"
)

// Kind discriminates the adjustment rows stored in approval_adjustments.
type Kind string

const (
	KindSuspension   Kind = "suspension"
	KindProlongation Kind = "prolongation"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSuspension, KindProlongation:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Bounds is [start, end] for suspensions and [start, end) for prolongations.
func (k Kind) Bounds() interval.Bounds {
	if k == KindProlongation {
		return interval.HalfOpen
	}
	return interval.Closed
}

func (k Kind) Valid() bool { return k == KindSuspension || k == KindProlongation }

// Reason is the kind-specific motive of an adjustment.
type Reason string

const (
	// Suspension reasons.
	ReasonContractSuspended         Reason = "CONTRACT_SUSPENDED"
	ReasonContractBroken            Reason = "CONTRACT_BROKEN"
	ReasonFinishedContract          Reason = "FINISHED_CONTRACT"
	ReasonApprovalBetweenCTAMembers Reason = "APPROVAL_BETWEEN_CTA_MEMBERS"
	ReasonContratPasserelle         Reason = "CONTRAT_PASSERELLE"
	ReasonSickness                  Reason = "SICKNESS"
	ReasonMaternity                 Reason = "MATERNITY"
	ReasonIncarceration             Reason = "INCARCERATION"
	ReasonTrialOutsideIAE           Reason = "TRIAL_OUTSIDE_IAE"
	ReasonDetoxification            Reason = "DETOXIFICATION"
	ReasonForceMajeure              Reason = "FORCE_MAJEURE"

	// Prolongation reasons.
	ReasonCompleteTraining       Reason = "COMPLETE_TRAINING"
	ReasonRQTH                   Reason = "RQTH"
	ReasonSenior                 Reason = "SENIOR"
	ReasonParticularDifficulties Reason = "PARTICULAR_DIFFICULTIES"
)

var suspensionReasons = map[Reason]struct{}{
	ReasonContractSuspended:         {},
	ReasonContractBroken:            {},
	ReasonFinishedContract:          {},
	ReasonApprovalBetweenCTAMembers: {},
	ReasonContratPasserelle:         {},
	ReasonSickness:                  {},
	ReasonMaternity:                 {},
	ReasonIncarceration:             {},
	ReasonTrialOutsideIAE:           {},
	ReasonDetoxification:            {},
	ReasonForceMajeure:              {},
}

// prolongationMaxMonths caps the length of a single prolongation per reason.
var prolongationMaxMonths = map[Reason]int{
	ReasonCompleteTraining:       6,
	ReasonRQTH:                   12,
	ReasonSenior:                 12,
	ReasonParticularDifficulties: 12,
}

// ValidateReason checks that r belongs to kind k.
func (k Kind) ValidateReason(r Reason) error {
	var ok bool
	switch k {
	case KindSuspension:
		_, ok = suspensionReasons[r]
	case KindProlongation:
		_, ok = prolongationMaxMonths[r]
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, string(k))
	}
	if !ok {
		return fmt.Errorf("%w: %q is not a %s reason", ErrInvalidReason, string(r), k)
	}
	return nil
}

// MaxMonths returns the longest prolongation allowed for r, or 0 when unbounded.
func MaxMonths(r Reason) int { return prolongationMaxMonths[r] }
