// Package notify delivers the compact run digest to a Discord webhook.
// Delivery is best-effort: the caller logs failures and the run still
// completes successfully.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/osrs-econ/herbsched/internal/logger"
	"github.com/osrs-econ/herbsched/internal/report"
)

const (
	// defaultRetryAfter is used when a 429 response carries no usable
	// retry_after field.
	defaultRetryAfter = 2 * time.Second

	// minRetryAfter floors the server-provided delay.
	minRetryAfter = 1 * time.Second

	requestTimeout = 20 * time.Second
)

// Notifier posts message chunks to a single webhook URL.
type Notifier struct {
	webhookURL string
	httpClient *http.Client

	// sleep is swappable so tests do not wait out real rate-limit delays.
	sleep func(time.Duration)
}

// New creates a Notifier for the given webhook URL.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		sleep:      time.Sleep,
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

type rateLimitBody struct {
	RetryAfter float64 `json:"retry_after"`
}

// Send chunks the content to the delivery character limit and posts the
// chunks sequentially. A 429 triggers exactly one retry after the indicated
// delay; any other failure aborts the remaining chunks with an error the
// caller is expected to log, not propagate.
func (n *Notifier) Send(ctx context.Context, content string) error {
	for _, chunk := range report.Chunk(content, report.ContentLimit) {
		if err := n.postChunk(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) postChunk(ctx context.Context, chunk string) error {
	status, body, err := n.post(ctx, chunk)
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}

	if status == http.StatusTooManyRequests {
		delay := retryDelay(body)
		logger.FromContext(ctx).Warn("Webhook rate limited, retrying once", "retry_after", delay)
		n.sleep(delay)

		status, body, err = n.post(ctx, chunk)
		if err != nil {
			return fmt.Errorf("webhook retry failed: %w", err)
		}
	}

	if status < 200 || status > 299 {
		return fmt.Errorf("webhook returned HTTP %d: %s", status, string(body))
	}
	return nil
}

func (n *Notifier) post(ctx context.Context, chunk string) (int, []byte, error) {
	payload, err := json.Marshal(webhookPayload{Content: chunk})
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

// retryDelay extracts the server-provided delay from a 429 body: at least one
// second, rounded up to whole seconds. Unparsable bodies fall back to the
// default.
func retryDelay(body []byte) time.Duration {
	var rl rateLimitBody
	if err := json.Unmarshal(body, &rl); err != nil || rl.RetryAfter <= 0 {
		return defaultRetryAfter
	}
	d := time.Duration(math.Ceil(rl.RetryAfter)) * time.Second
	if d < minRetryAfter {
		return minRetryAfter
	}
	return d
}
