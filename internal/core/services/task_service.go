package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

const defaultRecentLimit = 5

type TaskServiceConfig struct {
	Repository ports.TaskRepository
	Logger     *logger.Logger
}

type TaskService struct {
	repo   ports.TaskRepository
	logger *logger.Logger
}

func NewTaskService(cfg TaskServiceConfig) *TaskService {
	return &TaskService{repo: cfg.Repository, logger: cfg.Logger}
}

func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" || input.UserID == "" || input.Date.IsZero() {
		return nil, ErrTaskInvalidInput
	}
	if input.Duration < 0 {
		return nil, ErrTaskInvalidDuration
	}
	if _, err := time.Parse("15:04", input.StartTime); err != nil {
		return nil, ErrTaskInvalidStartTime
	}

	category := input.Category
	if category == "" {
		category = "work"
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		Duration:    input.Duration,
		Category:    category,
		Status:      domain.TaskStatusPending,
		UserID:      input.UserID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("task_created", "id", task.ID, "user_id", task.UserID, "start_time", task.StartTime)
	return task, nil
}

func (s *TaskService) GetTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *TaskService) GetRecentTasks(ctx context.Context, userID string, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.GetRecentByUser(ctx, userID, limit)
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// CompleteTask is the user-driven leg of the status machine. The scanner owns
// the pending-to-overdue edge; neither transition ever reverses.
func (s *TaskService) CompleteTask(ctx context.Context, id string) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrTaskNotFound
	}
	if task.Status != domain.TaskStatusPending {
		return ErrTaskNotPending
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.TaskStatusCompleted); err != nil {
		return err
	}
	s.logger.Infow("task_completed", "id", id)
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrTaskNotFound
	}
	return s.repo.Delete(ctx, id)
}
