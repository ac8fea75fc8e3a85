package db

import (
	"context"
	"time"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "user_id", task.UserID, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID, "user_id", task.UserID)
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		r.log.Errorw("task_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		r.log.Errorw("task_repo_list_failed", "user_id", userID, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_recent_failed", "user_id", userID, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetPendingSince(ctx context.Context, since time.Time) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("status = ? AND date >= ?", domain.TaskStatusPending, since).
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_pending_query_failed", "since", since, "error", err)
		return nil, err
	}
	r.log.Infow("task_repo_pending_query_ok", "since", since, "count", len(tasks))
	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		r.log.Errorw("task_repo_update_status_failed", "id", id, "status", status, "error", err)
		return err
	}
	r.log.Infow("task_repo_update_status_ok", "id", id, "status", status)
	return nil
}

// BatchUpdateStatus flips every listed task inside one transaction so readers
// never observe a partially applied batch.
func (r *taskRepository) BatchUpdateStatus(ctx context.Context, ids []string, status domain.TaskStatus) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&domain.Task{}).
			Where("id IN ?", ids).
			Update("status", status).Error
	})
	if err != nil {
		r.log.Errorw("task_repo_batch_status_failed", "count", len(ids), "status", status, "error", err)
		return err
	}
	r.log.Infow("task_repo_batch_status_ok", "count", len(ids), "status", status)
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Task{}).Error; err != nil {
		r.log.Errorw("task_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("task_repo_delete_ok", "id", id)
	return nil
}
