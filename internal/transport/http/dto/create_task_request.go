package dto

import (
	"time"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	StartTime   string `json:"start_time"`
	Duration    int    `json:"duration"`
	Category    string `json:"category"`
	UserID      string `json:"user_id"`
}

func (r *CreateTaskRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.Title == "" {
		errs["title"] = "title is required"
	}
	if r.UserID == "" {
		errs["user_id"] = "user_id is required"
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if _, err := time.Parse("15:04", r.StartTime); err != nil {
		errs["start_time"] = "start_time must be HH:MM"
	}
	if r.Duration < 0 {
		errs["duration"] = "duration must not be negative"
	}

	return errs
}

func (r *CreateTaskRequest) GetDate() time.Time {
	date, _ := time.Parse("2006-01-02", r.Date)
	return date
}
