package http

import (
	"errors"
	"net/http"

	"approvals-engine/internal/domain/adjustment"
	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
	"approvals-engine/internal/usecase/resolver"

	"github.com/labstack/echo/v4"
)

// statusOf maps usecase errors to HTTP codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, approval.ErrNotFound),
		errors.Is(err, adjustment.ErrNotFound),
		errors.Is(err, resolver.ErrNoValidApproval):
		return http.StatusNotFound

	case errors.Is(err, approval.ErrDuplicateActiveApproval),
		errors.Is(err, approval.ErrAlreadyExists),
		errors.Is(err, adjustment.ErrOverlapping),
		errors.Is(err, resolver.ErrAmbiguousLegacyMatch):
		return http.StatusConflict

	case errors.Is(err, interval.ErrInvalidDateRange),
		errors.Is(err, approval.ErrInvalidNumber),
		errors.Is(err, approval.ErrReservedNumberPrefix),
		errors.Is(err, approval.ErrNumberSequenceExhausted),
		errors.Is(err, adjustment.ErrInvalidKind),
		errors.Is(err, adjustment.ErrInvalidReason),
		errors.Is(err, adjustment.ErrStartsBeforeApproval),
		errors.Is(err, adjustment.ErrSuspensionInFuture),
		errors.Is(err, adjustment.ErrDurationExceeded):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError renders err; internal errors never leak their message.
func writeError(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
