package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shellist/backend/internal/core/ports"
	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

// ==================== fakes ====================

type fakeTaskRepo struct {
	mu       sync.Mutex
	tasks    []domain.Task
	queryErr error
	batchErr error
	batches  [][]string
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error { return nil }
func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTaskRepo) GetByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	return nil, nil
}
func (f *fakeTaskRepo) GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Task, error) {
	return nil, nil
}
func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	return nil
}
func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeTaskRepo) GetPendingSince(ctx context.Context, since time.Time) ([]domain.Task, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Task
	for _, t := range f.tasks {
		if t.Status == domain.TaskStatusPending && !t.Date.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) BatchUpdateStatus(ctx context.Context, ids []string, status domain.TaskStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, ids)
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, id := range ids {
		for i := range f.tasks {
			if f.tasks[i].ID == id {
				f.tasks[i].Status = status
			}
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	settings map[string]*domain.UserSettings
}

func (f *fakeSettingsRepo) GetByUserID(ctx context.Context, userID string) (*domain.UserSettings, error) {
	return f.settings[userID], nil
}
func (f *fakeSettingsRepo) Save(ctx context.Context, settings *domain.UserSettings) error {
	return nil
}

type fakeNotificationLog struct {
	mu      sync.Mutex
	records []domain.NotificationRecord
}

func (f *fakeNotificationLog) Create(ctx context.Context, record *domain.NotificationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}
func (f *fakeNotificationLog) GetByTask(ctx context.Context, taskID string) ([]domain.NotificationRecord, error) {
	return nil, nil
}

type fakeDispatcher struct {
	mu      sync.Mutex
	sent    []domain.Notification
	failFor map[string]bool
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[n.TaskID] {
		return errors.New("webhook: unexpected status 502")
	}
	f.sent = append(f.sent, n)
	return nil
}

// ==================== helpers ====================

type scannerFixture struct {
	tasks      *fakeTaskRepo
	users      *fakeUserRepo
	settings   *fakeSettingsRepo
	log        *fakeNotificationLog
	dispatcher *fakeDispatcher
	scanner    *ScannerService
}

func newScannerFixture() *scannerFixture {
	f := &scannerFixture{
		tasks: &fakeTaskRepo{},
		users: &fakeUserRepo{users: map[string]*domain.User{
			"alice": {ID: "alice", Username: "alice", Email: "alice@example.com", DisplayName: "Alice"},
		}},
		settings:   &fakeSettingsRepo{settings: map[string]*domain.UserSettings{}},
		log:        &fakeNotificationLog{},
		dispatcher: &fakeDispatcher{failFor: map[string]bool{}},
	}
	f.scanner = NewScannerService(ScannerServiceConfig{
		TaskRepo:        f.tasks,
		UserRepo:        f.users,
		SettingsRepo:    f.settings,
		NotificationLog: f.log,
		Dispatcher:      f.dispatcher,
		Logger:          logger.NewNop(),
	})
	return f
}

var day = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 10, hour, minute, 0, 0, time.UTC)
}

// 09:00 start + 30 minutes puts the deadline at 09:30.
func nineOClockTask(id string) domain.Task {
	return domain.Task{
		ID:        id,
		Title:     "morning shell",
		Date:      day,
		StartTime: "09:00",
		Duration:  30,
		Status:    domain.TaskStatusPending,
		UserID:    "alice",
	}
}

var _ ports.ScannerService = (*ScannerService)(nil)

// ==================== tests ====================

func TestRunScan_EmptyTaskSet(t *testing.T) {
	f := newScannerFixture()

	result, err := f.scanner.RunScan(context.Background(), at(9, 0))

	assert.NoError(t, err)
	assert.Equal(t, domain.ScanResult{}, result)
	assert.Empty(t, f.dispatcher.sent)
	assert.Empty(t, f.tasks.batches)
}

func TestRunScan_ReminderWindow(t *testing.T) {
	f := newScannerFixture()
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}

	// deadline 09:30 sits inside (09:20, 09:35)
	result, err := f.scanner.RunScan(context.Background(), at(9, 20))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.ScannedCount)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Equal(t, 0, result.TransitionedCount)
	assert.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, domain.NotificationKindReminder, f.dispatcher.sent[0].Kind)
	assert.Equal(t, "alice@example.com", f.dispatcher.sent[0].Email)
	assert.Empty(t, f.tasks.batches, "a reminder must not stage a status transition")
}

func TestRunScan_DeadlineBeyondHorizonNoAction(t *testing.T) {
	f := newScannerFixture()
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}

	// deadline 09:30 is past the 09:25 horizon
	result, err := f.scanner.RunScan(context.Background(), at(9, 10))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.ScannedCount)
	assert.Equal(t, 0, result.NotifiedCount)
	assert.Empty(t, f.dispatcher.sent)
}

func TestRunScan_OverdueWindow(t *testing.T) {
	f := newScannerFixture()
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}

	// deadline 09:30 <= 09:31 and still after the 09:29 floor
	result, err := f.scanner.RunScan(context.Background(), at(9, 31))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Equal(t, 1, result.TransitionedCount)
	assert.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, domain.NotificationKindOverdue, f.dispatcher.sent[0].Kind)
	assert.Equal(t, [][]string{{"t1"}}, f.tasks.batches)
	assert.Equal(t, domain.TaskStatusOverdue, f.tasks.tasks[0].Status)
}

func TestRunScan_PastFloorNoAction(t *testing.T) {
	f := newScannerFixture()
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}

	// deadline 09:30 is at or before the 09:38 floor: already handled earlier
	result, err := f.scanner.RunScan(context.Background(), at(9, 40))

	assert.NoError(t, err)
	assert.Equal(t, 0, result.NotifiedCount)
	assert.Equal(t, 0, result.TransitionedCount)
	assert.Empty(t, f.dispatcher.sent)
	assert.Empty(t, f.tasks.batches)
}

func TestRunScan_DeadlineExactlyNowIsOverdueOnly(t *testing.T) {
	f := newScannerFixture()
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}

	result, err := f.scanner.RunScan(context.Background(), at(9, 30))

	assert.NoError(t, err)
	assert.Len(t, f.dispatcher.sent, 1, "a task never gets both notifications in one scan")
	assert.Equal(t, domain.NotificationKindOverdue, f.dispatcher.sent[0].Kind)
	assert.Equal(t, 1, result.TransitionedCount)
}

func TestRunScan_ZeroDurationDeadlineIsStart(t *testing.T) {
	f := newScannerFixture()
	task := nineOClockTask("t1")
	task.Duration = 0
	f.tasks.tasks = []domain.Task{task}

	// deadline equals the 09:00 start, one minute gone
	_, err := f.scanner.RunScan(context.Background(), at(9, 1))

	assert.NoError(t, err)
	assert.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, domain.NotificationKindOverdue, f.dispatcher.sent[0].Kind)
}

func TestRunScan_QueryFailureIsFatal(t *testing.T) {
	f := newScannerFixture()
	f.tasks.queryErr = errors.New("connection refused")

	result, err := f.scanner.RunScan(context.Background(), at(9, 0))

	assert.ErrorIs(t, err, ErrScanQueryFailed)
	assert.Equal(t, domain.ScanResult{}, result)
	assert.Empty(t, f.dispatcher.sent)
	assert.Empty(t, f.tasks.batches)
}

func TestRunScan_DispatchFailureIsolated(t *testing.T) {
	f := newScannerFixture()
	t1 := nineOClockTask("t1")
	t2 := nineOClockTask("t2")
	f.tasks.tasks = []domain.Task{t1, t2}
	f.dispatcher.failFor["t1"] = true

	result, err := f.scanner.RunScan(context.Background(), at(9, 31))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, "t2", f.dispatcher.sent[0].TaskID)
	// both transitions commit even though one notification failed
	assert.Equal(t, 2, result.TransitionedCount)
	assert.Len(t, f.tasks.batches, 1)
	assert.ElementsMatch(t, []string{"t1", "t2"}, f.tasks.batches[0])
}

func TestRunScan_MissingEmailSkipsOnlyThatTask(t *testing.T) {
	f := newScannerFixture()
	f.users.users["ghost"] = &domain.User{ID: "ghost", Username: "ghost"}
	t1 := nineOClockTask("t1")
	t1.UserID = "ghost"
	t2 := nineOClockTask("t2")
	f.tasks.tasks = []domain.Task{t1, t2}

	result, err := f.scanner.RunScan(context.Background(), at(9, 20))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, "t2", f.dispatcher.sent[0].TaskID)
}

func TestRunScan_MalformedStartTimeSkipsOnlyThatTask(t *testing.T) {
	f := newScannerFixture()
	bad := nineOClockTask("bad")
	bad.StartTime = "9am"
	f.tasks.tasks = []domain.Task{bad, nineOClockTask("ok")}

	result, err := f.scanner.RunScan(context.Background(), at(9, 20))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.ScannedCount)
	assert.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, "ok", f.dispatcher.sent[0].TaskID)
}

func TestRunScan_RemindersDisabledMutesReminderOnly(t *testing.T) {
	f := newScannerFixture()
	settings := domain.DefaultUserSettings("alice")
	settings.TaskReminders = false
	f.settings.settings["alice"] = settings
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}

	result, err := f.scanner.RunScan(context.Background(), at(9, 20))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.NotifiedCount)
	assert.Empty(t, f.dispatcher.sent)

	// the overdue alert still goes out, and the transition still commits
	result, err = f.scanner.RunScan(context.Background(), at(9, 31))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Equal(t, 1, result.TransitionedCount)
}

func TestRunScan_BatchFailureDoesNotRetractNotifications(t *testing.T) {
	f := newScannerFixture()
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}
	f.tasks.batchErr = errors.New("serialization failure")

	result, err := f.scanner.RunScan(context.Background(), at(9, 31))

	assert.NoError(t, err, "batch commit failure is logged, not fatal")
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Equal(t, 0, result.TransitionedCount)
	assert.Equal(t, domain.TaskStatusPending, f.tasks.tasks[0].Status)
}

func TestRunScan_RepeatedInvocationIsIdempotent(t *testing.T) {
	f := newScannerFixture()
	f.tasks.tasks = []domain.Task{nineOClockTask("t1")}

	first, err := f.scanner.RunScan(context.Background(), at(9, 31))
	assert.NoError(t, err)
	assert.Equal(t, 1, first.TransitionedCount)

	// the task is overdue now, so the pending filter excludes it
	second, err := f.scanner.RunScan(context.Background(), at(9, 31))
	assert.NoError(t, err)
	assert.Equal(t, 0, second.ScannedCount)
	assert.Equal(t, 0, second.TransitionedCount)
	assert.Len(t, f.dispatcher.sent, 1)
}

func TestRunScan_RecordsEveryDispatchAttempt(t *testing.T) {
	f := newScannerFixture()
	t1 := nineOClockTask("t1")
	t2 := nineOClockTask("t2")
	f.tasks.tasks = []domain.Task{t1, t2}
	f.dispatcher.failFor["t2"] = true

	_, err := f.scanner.RunScan(context.Background(), at(9, 31))
	assert.NoError(t, err)

	assert.Len(t, f.log.records, 2)
	byTask := map[string]domain.DispatchStatus{}
	for _, rec := range f.log.records {
		byTask[rec.TaskID] = rec.Status
		assert.Equal(t, domain.NotificationKindOverdue, rec.Kind)
	}
	assert.Equal(t, domain.DispatchStatusSent, byTask["t1"])
	assert.Equal(t, domain.DispatchStatusFailed, byTask["t2"])
}
