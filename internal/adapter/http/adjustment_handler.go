package http

import (
	"net/http"

	domain "approvals-engine/internal/domain/adjustment"
	ucAdjustment "approvals-engine/internal/usecase/adjustment"
	"approvals-engine/pkg/id"

	"github.com/labstack/echo/v4"
)

type AdjustmentHandler struct{ uc *ucAdjustment.Usecase }

func NewAdjustmentHandler(uc *ucAdjustment.Usecase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

type insertAdjustmentReq struct {
	Kind              string `json:"kind"               validate:"required,adjkind"`
	StartAt           string `json:"start_at"           validate:"required,datetime=2006-01-02"`
	EndAt             string `json:"end_at"             validate:"required,datetime=2006-01-02"`
	Reason            string `json:"reason"             validate:"required"`
	ReasonExplanation string `json:"reason_explanation" validate:"max=2000"`
}

type updateAdjustmentReq struct {
	StartAt           string `json:"start_at"           validate:"required,datetime=2006-01-02"`
	EndAt             string `json:"end_at"             validate:"required,datetime=2006-01-02"`
	Reason            string `json:"reason"             validate:"required"`
	ReasonExplanation string `json:"reason_explanation" validate:"max=2000"`
}

// List serves ?kind=suspension|prolongation; no kind lists both.
func (h *AdjustmentHandler) List(c echo.Context) error {
	approvalID, ok := uintParam(c, "approval_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid approval_id path param"})
	}
	out, err := h.uc.List(c.Request().Context(), approvalID, domain.Kind(c.QueryParam("kind")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out})
}

func (h *AdjustmentHandler) Insert(c echo.Context) error {
	approvalID, ok := uintParam(c, "approval_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid approval_id path param"})
	}
	var req insertAdjustmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Insert(c.Request().Context(), ucAdjustment.InsertInput{
		ApprovalID:        approvalID,
		Kind:              domain.Kind(req.Kind),
		StartAt:           optionalDate(req.StartAt),
		EndAt:             optionalDate(req.EndAt),
		Reason:            domain.Reason(req.Reason),
		ReasonExplanation: req.ReasonExplanation,
		Actor:             actorOf(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AdjustmentHandler) Update(c echo.Context) error {
	publicID := c.Param("adjustment_id")
	if publicID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing adjustment_id path param"})
	}
	if !id.IsID32(publicID) {
		return writeError(c, domain.ErrNotFound)
	}
	var req updateAdjustmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Update(c.Request().Context(), ucAdjustment.UpdateInput{
		PublicID:          publicID,
		StartAt:           optionalDate(req.StartAt),
		EndAt:             optionalDate(req.EndAt),
		Reason:            domain.Reason(req.Reason),
		ReasonExplanation: req.ReasonExplanation,
		Actor:             actorOf(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdjustmentHandler) Delete(c echo.Context) error {
	publicID := c.Param("adjustment_id")
	if publicID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing adjustment_id path param"})
	}
	if !id.IsID32(publicID) {
		return writeError(c, domain.ErrNotFound)
	}
	dto, err := h.uc.Delete(c.Request().Context(), ucAdjustment.DeleteInput{
		PublicID: publicID,
		Actor:    actorOf(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
