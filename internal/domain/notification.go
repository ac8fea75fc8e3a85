package domain

import "time"

// NotificationIntent is built per scan for each task that entered one of the
// two notification windows. Intents are never persisted; the durable trail is
// the NotificationRecord written after the dispatch attempt.
type NotificationIntent struct {
	TaskID          string
	TaskTitle       string
	Kind            NotificationKind
	Deadline        time.Time
	RecipientUserID string
}

// Notification is the resolved outbound payload handed to the transport.
type Notification struct {
	Email     string
	UserName  string
	TaskID    string
	TaskTitle string
	Deadline  time.Time
	Kind      NotificationKind
}

// ScanResult summarizes one scanner invocation, for logging only.
type ScanResult struct {
	ScannedCount      int `json:"scanned_count"`
	NotifiedCount     int `json:"notified_count"`
	TransitionedCount int `json:"transitioned_count"`
}
