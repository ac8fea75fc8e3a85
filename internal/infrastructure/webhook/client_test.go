package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

func testNotification() domain.Notification {
	return domain.Notification{
		Email:     "alice@example.com",
		UserName:  "Alice",
		TaskID:    "t1",
		TaskTitle: "morning shell",
		Deadline:  time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC),
		Kind:      domain.NotificationKindReminder,
	}
}

func TestDispatch(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())
	err := client.Dispatch(context.Background(), testNotification())

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", got["email"])
	assert.Equal(t, "morning shell", got["taskTitle"])
	assert.Equal(t, "2026-03-10 09:30", got["deadline"])
	assert.Equal(t, "Alice", got["userName"])
	assert.Equal(t, "t1", got["taskId"])
	assert.Equal(t, "REMINDER", got["notificationType"])
}

func TestDispatch_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())
	err := client.Dispatch(context.Background(), testNotification())

	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestDispatch_UnreachableEndpointIsError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, logger.NewNop())

	err := client.Dispatch(context.Background(), testNotification())

	assert.Error(t, err)
}

func TestDispatch_UnconfiguredURL(t *testing.T) {
	client := NewClient("", time.Second, logger.NewNop())

	err := client.Dispatch(context.Background(), testNotification())

	assert.ErrorIs(t, err, ErrNotConfigured)
}
