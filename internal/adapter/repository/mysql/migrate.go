package mysql

import (
	"approvals-engine/internal/domain/adjustment"
	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/legacy"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables the engine owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&approval.Approval{},
		&legacy.Approval{},
		&adjustment.Adjustment{},
		&lockRow{},
	)
}
