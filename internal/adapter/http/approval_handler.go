package http

import (
	"net/http"
	"strconv"

	ucApproval "approvals-engine/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *ucApproval.Usecase }

func NewApprovalHandler(uc *ucApproval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type issueApprovalReq struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	// Accept canonical date `YYYY-MM-DD` (aligns with schema DATE)
	StartAt string `json:"start_at" validate:"required,datetime=2006-01-02"`
	// Defaults to two years minus a day.
	EndAt  string `json:"end_at"   validate:"omitempty,datetime=2006-01-02"`
	Number string `json:"number"   validate:"omitempty,approvalnumber"`
}

func (h *ApprovalHandler) Issue(c echo.Context) error {
	var req issueApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Issue(c.Request().Context(), ucApproval.IssueInput{
		OwnerID:   req.OwnerID,
		StartAt:   optionalDate(req.StartAt),
		EndAt:     optionalDate(req.EndAt),
		Number:    req.Number,
		CreatedBy: actorOf(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApprovalHandler) Get(c echo.Context) error {
	id, ok := uintParam(c, "approval_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid approval_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// NextNumber peeks at the number the next approval issued for ?year= would get.
func (h *ApprovalHandler) NextNumber(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 2000 || year > 2099 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "year must be between 2000 and 2099"})
	}
	n, err := h.uc.NextNumber(c.Request().Context(), year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"year": year, "number": n})
}
