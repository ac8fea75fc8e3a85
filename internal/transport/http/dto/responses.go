package dto

import (
	"time"

	"github.com/shellist/backend/internal/domain"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	Duration    int       `json:"duration"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func TaskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Date:        task.Date.Format("2006-01-02"),
		StartTime:   task.StartTime,
		Duration:    task.Duration,
		Category:    task.Category,
		Status:      string(task.Status),
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
	}
}

func TasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	return out
}

type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

func UserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
	}
}

func UsersToResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserToResponse(&users[i]))
	}
	return out
}

type FollowStatsResponse struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
