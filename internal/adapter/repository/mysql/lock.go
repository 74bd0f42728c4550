package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockRow backs named locks on engines without advisory locks.
// Table: approval_locks
type lockRow struct {
	Key       string    `gorm:"column:lock_key;primaryKey;size:128"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (lockRow) TableName() string { return "approval_locks" }

type LockRepository struct{ db *gorm.DB }

func NewLockRepository(db *gorm.DB) *LockRepository { return &LockRepository{db: db} }

// Acquire makes sure the key row exists, then locks it FOR UPDATE.
// Must run inside a transaction; the lock is released on commit or rollback.
func (r *LockRepository) Acquire(ctx context.Context, key string) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lock_key"}},
		DoNothing: true,
	}).Create(&lockRow{Key: key}).Error
	if err != nil {
		return err
	}
	var row lockRow
	return db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lock_key = ?", key).
		Take(&row).Error
}
