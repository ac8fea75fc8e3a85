package ports

import (
	"context"
	"time"

	"github.com/shellist/backend/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByUser(ctx context.Context, userID string) ([]domain.Task, error)
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Task, error)
	GetPendingSince(ctx context.Context, since time.Time) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
	BatchUpdateStatus(ctx context.Context, ids []string, status domain.TaskStatus) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
}

type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	GetFollowerIDs(ctx context.Context, userID string) ([]string, error)
	GetFollowingIDs(ctx context.Context, userID string) ([]string, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserSettings, error)
	Save(ctx context.Context, settings *domain.UserSettings) error
}

type NotificationLogRepository interface {
	Create(ctx context.Context, record *domain.NotificationRecord) error
	GetByTask(ctx context.Context, taskID string) ([]domain.NotificationRecord, error)
}
