package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

const (
	defaultReminderLead = 15 * time.Minute
	defaultOverdueGrace = 2 * time.Minute
)

type ScannerServiceConfig struct {
	TaskRepo        ports.TaskRepository
	UserRepo        ports.UserRepository
	SettingsRepo    ports.SettingsRepository
	NotificationLog ports.NotificationLogRepository
	Dispatcher      ports.NotificationDispatcher
	Logger          *logger.Logger

	// ReminderLead bounds the upcoming-deadline window, OverdueGrace bounds
	// how long past its deadline a task still counts as newly overdue.
	ReminderLead time.Duration
	OverdueGrace time.Duration
}

// ScannerService walks all pending tasks once per invocation, notifies owners
// whose deadlines entered the reminder or overdue window, and flips newly
// overdue tasks in a single batch write.
type ScannerService struct {
	taskRepo        ports.TaskRepository
	userRepo        ports.UserRepository
	settingsRepo    ports.SettingsRepository
	notificationLog ports.NotificationLogRepository
	dispatcher      ports.NotificationDispatcher
	logger          *logger.Logger

	reminderLead time.Duration
	overdueGrace time.Duration

	mu sync.Mutex // invocations must not overlap
}

func NewScannerService(cfg ScannerServiceConfig) *ScannerService {
	if cfg.ReminderLead <= 0 {
		cfg.ReminderLead = defaultReminderLead
	}
	if cfg.OverdueGrace <= 0 {
		cfg.OverdueGrace = defaultOverdueGrace
	}
	return &ScannerService{
		taskRepo:        cfg.TaskRepo,
		userRepo:        cfg.UserRepo,
		settingsRepo:    cfg.SettingsRepo,
		notificationLog: cfg.NotificationLog,
		dispatcher:      cfg.Dispatcher,
		logger:          cfg.Logger,
		reminderLead:    cfg.ReminderLead,
		overdueGrace:    cfg.OverdueGrace,
	}
}

// RunScan evaluates every pending task against the injected instant. A task
// whose deadline falls strictly inside (now, now+lead) gets a reminder; one
// whose deadline is at or before now but still after now-grace gets an
// overdue notification and is staged for the status batch. The two branches
// are mutually exclusive. Only the pending-task query is fatal; everything
// per task is isolated.
func (s *ScannerService) RunScan(ctx context.Context, now time.Time) (domain.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	horizon := now.Add(s.reminderLead)
	floor := now.Add(-s.overdueGrace)

	// Querying from midnight rather than now keeps tasks whose deadline
	// spans into the next day inside the scan.
	tasks, err := s.taskRepo.GetPendingSince(ctx, domain.StartOfDay(now))
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("%w: %v", ErrScanQueryFailed, err)
	}

	var intents []domain.NotificationIntent
	var staged []string

	for i := range tasks {
		task := &tasks[i]

		deadline, err := task.Deadline()
		if err != nil {
			s.logger.Warnw("scan_task_skipped", "task_id", task.ID, "error", err)
			continue
		}

		switch {
		case deadline.After(now) && deadline.Before(horizon):
			intents = append(intents, intent(task, domain.NotificationKindReminder, deadline))
		case !deadline.After(now) && deadline.After(floor):
			intents = append(intents, intent(task, domain.NotificationKindOverdue, deadline))
			staged = append(staged, task.ID)
		}
	}

	var notified atomic.Int64
	var wg sync.WaitGroup
	for _, in := range intents {
		wg.Add(1)
		go func(in domain.NotificationIntent) {
			defer wg.Done()
			if s.dispatchIntent(ctx, in) {
				notified.Add(1)
			}
		}(in)
	}
	wg.Wait()

	// The batch commits regardless of how many notifications landed. If it
	// fails, the rows stay pending and the next scan re-detects them.
	transitioned := 0
	if len(staged) > 0 {
		if err := s.taskRepo.BatchUpdateStatus(ctx, staged, domain.TaskStatusOverdue); err != nil {
			s.logger.Errorw("scan_batch_commit_failed", "task_ids", staged, "error", err)
		} else {
			transitioned = len(staged)
		}
	}

	result := domain.ScanResult{
		ScannedCount:      len(tasks),
		NotifiedCount:     int(notified.Load()),
		TransitionedCount: transitioned,
	}
	s.logger.Infow("scan_completed",
		"scanned", result.ScannedCount,
		"notified", result.NotifiedCount,
		"transitioned", result.TransitionedCount,
	)
	return result, nil
}

func intent(task *domain.Task, kind domain.NotificationKind, deadline time.Time) domain.NotificationIntent {
	return domain.NotificationIntent{
		TaskID:          task.ID,
		TaskTitle:       task.Title,
		Kind:            kind,
		Deadline:        deadline,
		RecipientUserID: task.UserID,
	}
}

// dispatchIntent resolves the recipient and fires one webhook. Every failure
// path logs and records the attempt without touching sibling intents.
func (s *ScannerService) dispatchIntent(ctx context.Context, in domain.NotificationIntent) bool {
	user, err := s.userRepo.GetByID(ctx, in.RecipientUserID)
	if err != nil || user == nil || user.Email == "" {
		s.logger.Infow("scan_notify_no_recipient", "task_id", in.TaskID, "user_id", in.RecipientUserID)
		s.record(ctx, in, "", domain.DispatchStatusSkipped, "no recipient email")
		return false
	}

	if reason := s.muted(ctx, user.ID, in.Kind); reason != "" {
		s.logger.Infow("scan_notify_muted", "task_id", in.TaskID, "user_id", user.ID, "reason", reason)
		s.record(ctx, in, user.Email, domain.DispatchStatusSkipped, reason)
		return false
	}

	name := user.DisplayName
	if name == "" {
		name = "User"
	}

	err = s.dispatcher.Dispatch(ctx, domain.Notification{
		Email:     user.Email,
		UserName:  name,
		TaskID:    in.TaskID,
		TaskTitle: in.TaskTitle,
		Deadline:  in.Deadline,
		Kind:      in.Kind,
	})
	if err != nil {
		s.logger.Errorw("scan_notify_failed", "task_id", in.TaskID, "kind", in.Kind, "error", err)
		s.record(ctx, in, user.Email, domain.DispatchStatusFailed, err.Error())
		return false
	}

	s.logger.Infow("scan_notify_sent", "task_id", in.TaskID, "kind", in.Kind, "email", user.Email)
	s.record(ctx, in, user.Email, domain.DispatchStatusSent, "")
	return true
}

// muted checks the owner's notification preferences. A missing or unreadable
// settings row falls back to the defaults, which allow everything.
func (s *ScannerService) muted(ctx context.Context, userID string, kind domain.NotificationKind) string {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil || settings == nil {
		return ""
	}
	if !settings.EmailNotifications {
		return "email notifications disabled"
	}
	if kind == domain.NotificationKindReminder && !settings.TaskReminders {
		return "task reminders disabled"
	}
	return ""
}

func (s *ScannerService) record(ctx context.Context, in domain.NotificationIntent, recipient string, status domain.DispatchStatus, detail string) {
	if s.notificationLog == nil {
		return
	}

	var meta domain.JSONB
	if detail != "" {
		meta = domain.JSONB{"detail": detail}
	}

	rec := &domain.NotificationRecord{
		TaskID:    in.TaskID,
		Kind:      in.Kind,
		Recipient: recipient,
		Deadline:  in.Deadline,
		Status:    status,
		Meta:      meta,
	}
	if err := s.notificationLog.Create(ctx, rec); err != nil {
		s.logger.Errorw("scan_notification_record_failed", "task_id", in.TaskID, "error", err)
	}
}
