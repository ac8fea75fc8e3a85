package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

var ErrNotConfigured = errors.New("webhook: url not configured")

const deadlineLayout = "2006-01-02 15:04"

type payload struct {
	Email            string `json:"email"`
	TaskTitle        string `json:"taskTitle"`
	Deadline         string `json:"deadline"`
	UserName         string `json:"userName"`
	TaskID           string `json:"taskId"`
	NotificationType string `json:"notificationType"`
}

// Client posts notification payloads to the configured webhook endpoint.
// The endpoint is opaque: any transport error or non-2xx response counts
// uniformly as a failed dispatch.
type Client struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(url string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) Dispatch(ctx context.Context, n domain.Notification) error {
	if c.url == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload{
		Email:            n.Email,
		TaskTitle:        n.TaskTitle,
		Deadline:         n.Deadline.Format(deadlineLayout),
		UserName:         n.UserName,
		TaskID:           n.TaskID,
		NotificationType: string(n.Kind),
	})
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}

	c.log.Infow("webhook_dispatch_ok", "task_id", n.TaskID, "type", n.Kind)
	return nil
}
