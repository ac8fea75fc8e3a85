package db

import (
	"context"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type notificationLogRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationLogRepository(db *gorm.DB, log *logger.Logger) ports.NotificationLogRepository {
	return &notificationLogRepository{db: db, log: log}
}

func (r *notificationLogRepository) Create(ctx context.Context, record *domain.NotificationRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		r.log.Errorw("notification_log_create_failed", "task_id", record.TaskID, "kind", record.Kind, "error", err)
		return err
	}
	return nil
}

func (r *notificationLogRepository) GetByTask(ctx context.Context, taskID string) ([]domain.NotificationRecord, error) {
	var records []domain.NotificationRecord
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		r.log.Errorw("notification_log_list_failed", "task_id", taskID, "error", err)
		return nil, err
	}
	return records, nil
}
