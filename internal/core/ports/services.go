package ports

import (
	"context"
	"time"

	"github.com/shellist/backend/internal/domain"
)

type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetTasks(ctx context.Context, userID string) ([]domain.Task, error)
	GetRecentTasks(ctx context.Context, userID string, limit int) ([]domain.Task, error)
	GetTaskByID(ctx context.Context, id string) (*domain.Task, error)
	CompleteTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

type CreateTaskInput struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	Duration    int
	Category    string
	UserID      string
}

type UserService interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	UpdateUsername(ctx context.Context, userID, username string) error
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) error
	SearchUsers(ctx context.Context, query string) ([]domain.User, error)
}

type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
}

type FollowService interface {
	FollowUser(ctx context.Context, followerID, followingID string) error
	UnfollowUser(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	GetFollowers(ctx context.Context, userID string) ([]string, error)
	GetFollowing(ctx context.Context, userID string) ([]string, error)
	GetFollowStats(ctx context.Context, userID string) (followers, following int64, err error)
}

type SettingsService interface {
	GetSettings(ctx context.Context, userID string) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.UserSettings) error
}

type ScannerService interface {
	RunScan(ctx context.Context, now time.Time) (domain.ScanResult, error)
}

// NotificationDispatcher sends one resolved notification to the outbound
// transport. Transport and HTTP-status failures surface uniformly as errors.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}
