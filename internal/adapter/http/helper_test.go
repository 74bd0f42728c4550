package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"approvals-engine/internal/adapter/repository/mysql"
	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/interval"
	ucAdjustment "approvals-engine/internal/usecase/adjustment"
	ucApproval "approvals-engine/internal/usecase/approval"
	"approvals-engine/internal/usecase/resolver"
	"approvals-engine/pkg/clock"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func d(y int, m time.Month, day int) time.Time { return interval.NewDate(y, m, day) }

var today = clock.Fixed(d(2024, 7, 1))

func openStore(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := mysql.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newServer wires every route against an in-memory store.
func newServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := openStore(t)
	tx := mysql.NewGormUoW(db)

	e := newEchoWithValidator()
	Routes{
		Health:      NewHandler(),
		Approvals:   NewApprovalHandler(ucApproval.NewUsecase(tx, today, "99999", nil, nil)),
		Adjustments: NewAdjustmentHandler(ucAdjustment.NewUsecase(tx, today, nil, nil)),
		Resolutions: NewResolutionHandler(resolver.New(tx, today, approval.DefaultWaitingPeriod, nil, nil)),
	}.Register(e)
	return e, db
}

func seedApproval(t *testing.T, db *gorm.DB, number, owner string, start, end time.Time) *approval.Approval {
	t.Helper()
	a := &approval.Approval{Number: number, OwnerID: owner, StartAt: start, EndAt: end, Origin: approval.OriginIssued}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed approval: %v", err)
	}
	return a
}

func do(t *testing.T, e *echo.Echo, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderActorID, "agent-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return out
}

func itoa(n uint64) string { return strconv.FormatUint(n, 10) }
