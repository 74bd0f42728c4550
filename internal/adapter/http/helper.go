package http

import (
	"strconv"
	"strings"
	"time"

	"approvals-engine/internal/domain/interval"

	"github.com/labstack/echo/v4"
)

// HeaderActorID names the agent performing a write. Also part of the idempotency key.
const HeaderActorID = "Ax-Actor-Id"

func actorOf(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
}

func uintParam(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

// optionalDate parses YYYY-MM-DD; "" is the zero time. The request validator
// has already checked the layout.
func optionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := interval.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
