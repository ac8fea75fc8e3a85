package db

import (
	"github.com/shellist/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Task{},
		&domain.Follow{},
		&domain.UserSettings{},
		&domain.NotificationRecord{},
	)
	if err != nil {
		return err
	}

	return createCustomIndexes(db)
}

func createCustomIndexes(db *gorm.DB) error {
	// One follow edge per (follower, following) pair
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_follows_unique
		ON follows (follower_id, following_id)
	`).Error; err != nil {
		return err
	}

	// The scanner filters on status and date together every minute
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_status_date
		ON tasks (status, date)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	// Dispatch history lookups by task and kind
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_notification_records_task_kind
		ON notification_records (task_id, kind)
	`).Error; err != nil {
		return err
	}

	return nil
}
