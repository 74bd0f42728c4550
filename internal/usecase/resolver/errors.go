package resolver

import "errors"

var (
	ErrNoValidApproval = errors.New("no valid approval for this person")
	// ErrAmbiguousLegacyMatch is returned by GetOrCreateApproval; Resolve reports
	// the same situation as CodeMultipleResults.
	ErrAmbiguousLegacyMatch = errors.New("several legacy approvals match this person")
	ErrNoUnitOfWork         = errors.New("resolver: no unit of work")
)
