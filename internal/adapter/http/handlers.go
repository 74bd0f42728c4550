package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Routes groups the handlers served by the API.
type Routes struct {
	Health      *Handler
	Approvals   *ApprovalHandler
	Adjustments *AdjustmentHandler
	Resolutions *ResolutionHandler
}

// Register mounts every route on e. write wraps the mutating routes only.
func (r Routes) Register(e *echo.Echo, write ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)

	e.POST("/approvals", r.Approvals.Issue, write...)
	e.GET("/approvals/next-number", r.Approvals.NextNumber)
	e.GET("/approvals/:approval_id", r.Approvals.Get)

	e.GET("/approvals/:approval_id/adjustments", r.Adjustments.List)
	e.POST("/approvals/:approval_id/adjustments", r.Adjustments.Insert, write...)
	e.PUT("/adjustments/:adjustment_id", r.Adjustments.Update, write...)
	e.DELETE("/adjustments/:adjustment_id", r.Adjustments.Delete, write...)

	e.POST("/resolutions", r.Resolutions.Resolve)
	e.POST("/resolutions/approval", r.Resolutions.GetOrCreate, write...)
}
