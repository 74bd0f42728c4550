package approval

import (
	"errors"
	"fmt"

	"approvals-engine/internal/domain/interval"
)

var (
	ErrNotFound = errors.New("approval not found")

	// ErrInvalidDateRange is returned when end_at is not after start_at.
	ErrInvalidDateRange = interval.ErrInvalidDateRange

	ErrDuplicateActiveApproval = errors.New("owner already has a valid or upcoming approval")
	ErrAlreadyExists           = errors.New("an approval with this number already exists")

	ErrInvalidNumber           = errors.New("invalid approval number")
	ErrReservedNumberPrefix    = errors.New("numbers with the issuing prefix are allocated automatically")
	ErrNumberSequenceExhausted = errors.New("approval number sequence exhausted for year")
)

type InvalidDateRangeError = interval.InvalidDateRangeError

// DuplicateActiveApprovalError points the caller to the approval that blocks creation.
type DuplicateActiveApprovalError struct {
	OwnerID        string
	ExistingNumber string
}

func (e *DuplicateActiveApprovalError) Error() string {
	return fmt.Sprintf("owner %s already has a valid or upcoming approval: %s", e.OwnerID, e.ExistingNumber)
}

func (e *DuplicateActiveApprovalError) Unwrap() error { return ErrDuplicateActiveApproval }

// AlreadyExistsError is raised when copying a legacy approval whose number is taken.
// Callers should re-read the current state instead of retrying.
type AlreadyExistsError struct {
	Number string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("approval %s already exists", e.Number)
}

func (e *AlreadyExistsError) Unwrap() error { return ErrAlreadyExists }
