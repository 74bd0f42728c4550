package mysql

import (
	"testing"
	"time"

	"approvals-engine/internal/domain/approval"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the engine's schema.
// One connection only: every new :memory: connection is a fresh database.
func openTestDB(t *testing.T) *gorm.DB {
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

	if err := Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func makeApproval(number, owner string, start, end time.Time) *approval.Approval {
	return &approval.Approval{
		Number:    number,
		OwnerID:   owner,
		StartAt:   start,
		EndAt:     end,
		Origin:    approval.OriginIssued,
		CreatedBy: "tester",
	}
}

func monthOf(m int) time.Month { return time.Month(m) }
