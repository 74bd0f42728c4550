package http

import (
	"net/http"

	ucApproval "approvals-engine/internal/usecase/approval"
	"approvals-engine/internal/usecase/resolver"

	"github.com/labstack/echo/v4"
)

type ResolutionHandler struct{ r *resolver.Resolver }

func NewResolutionHandler(r *resolver.Resolver) *ResolutionHandler { return &ResolutionHandler{r: r} }

type personReq struct {
	OwnerID   string `json:"owner_id"   validate:"required,max=64"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name"  validate:"required,max=255"`
	Birthdate string `json:"birthdate"  validate:"required,datetime=2006-01-02"`
}

func (req personReq) person() resolver.Person {
	return resolver.Person{
		OwnerID:   req.OwnerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthdate: optionalDate(req.Birthdate),
	}
}

// bind reports done when the response was already written.
func (h *ResolutionHandler) bind(c echo.Context) (req personReq, done bool, err error) {
	if err := c.Bind(&req); err != nil {
		return req, true, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return req, true, validationFailed(c, err)
	}
	return req, false, nil
}

// Resolve reports the person's current approval and result code. It never writes.
func (h *ResolutionHandler) Resolve(c echo.Context) error {
	req, done, err := h.bind(c)
	if done {
		return err
	}
	res, err := h.r.Resolve(c.Request().Context(), req.person())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resolver.ToDTO(res, h.r.WaitingPeriod(), h.r.Today()))
}

// GetOrCreate returns the valid internal approval, copying a legacy one when needed.
func (h *ResolutionHandler) GetOrCreate(c echo.Context) error {
	req, done, err := h.bind(c)
	if done {
		return err
	}
	a, err := h.r.GetOrCreateApproval(c.Request().Context(), req.person(), actorOf(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ucApproval.ToDTO(a))
}
