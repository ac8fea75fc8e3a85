package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ==================== ENUMS ====================

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusOverdue   TaskStatus = "overdue"
)

type NotificationKind string

const (
	NotificationKindReminder NotificationKind = "REMINDER"
	NotificationKindOverdue  NotificationKind = "OVERDUE"
)

type DispatchStatus string

const (
	DispatchStatusSent    DispatchStatus = "sent"
	DispatchStatusFailed  DispatchStatus = "failed"
	DispatchStatusSkipped DispatchStatus = "skipped"
)

// ==================== JSONB TYPES ====================

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan JSONB: invalid type")
	}
	return json.Unmarshal(bytes, j)
}

// ==================== ENTITIES ====================

type Task struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Date        time.Time  `gorm:"not null;index" json:"date"`
	StartTime   string     `gorm:"size:5;not null" json:"start_time"` // "HH:MM"
	Duration    int        `gorm:"not null;default:30" json:"duration"`
	Category    string     `gorm:"size:50;default:'work'" json:"category"`
	Status      TaskStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`

	UserID string `gorm:"size:36;not null;index" json:"user_id"`
	User   *User  `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Username    string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	DisplayName string `gorm:"size:255" json:"display_name,omitempty"`
	Bio         string `gorm:"type:text" json:"bio,omitempty"`

	Tasks []Task `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
}

type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FollowerID  string `gorm:"size:36;not null;index" json:"follower_id"`
	FollowingID string `gorm:"size:36;not null;index" json:"following_id"`
}

type UserSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"size:36;uniqueIndex;not null" json:"user_id"`

	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	PushNotifications  bool `gorm:"default:true" json:"push_notifications"`
	TaskReminders      bool `gorm:"default:true" json:"task_reminders"`
	WeeklyDigest       bool `gorm:"default:false" json:"weekly_digest"`

	Theme    string `gorm:"size:20;default:'system'" json:"theme"`
	Language string `gorm:"size:10;default:'en'" json:"language"`
	Timezone string `gorm:"size:64;default:'UTC'" json:"timezone"`
}

// DefaultUserSettings is what a user gets before they ever touch the
// settings page. Keep in sync with the gorm column defaults above.
func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		PushNotifications:  true,
		TaskReminders:      true,
		WeeklyDigest:       false,
		Theme:              "system",
		Language:           "en",
		Timezone:           "UTC",
	}
}

// NotificationRecord is the durable trail of every dispatch attempt the
// scanner makes, one row per task per kind per scan.
type NotificationRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	TaskID    string           `gorm:"size:36;not null;index" json:"task_id"`
	Kind      NotificationKind `gorm:"size:20;not null" json:"kind"`
	Recipient string           `gorm:"size:255" json:"recipient"`
	Deadline  time.Time        `json:"deadline"`
	Status    DispatchStatus   `gorm:"size:20;not null" json:"status"`
	Meta      JSONB            `gorm:"type:jsonb" json:"meta"`
}
