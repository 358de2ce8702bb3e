package subscriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/retry"
)

var ErrMissingEndpoint = errors.New("remote sync: endpoint url is empty")

// RemoteSyncClient posts subscribe/unsubscribe requests to the remote
// endpoint. The response body is ignored; only the status code matters.
type RemoteSyncClient struct {
	endpoint string
	client   *http.Client
	retryCfg retry.Config
}

func NewRemoteSyncClient(endpoint string, timeout time.Duration, retryCfg retry.Config) *RemoteSyncClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retryCfg.ShouldRetry == nil {
		retryCfg.ShouldRetry = isTransient
	}
	return &RemoteSyncClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
		retryCfg: retryCfg,
	}
}

// Post sends req and returns the response status code. Transport errors are
// retried according to the retry config; any response, whatever its status,
// ends the attempt loop.
func (c *RemoteSyncClient) Post(ctx context.Context, req models.SyncRequest) (int, error) {
	if c.endpoint == "" {
		return 0, ErrMissingEndpoint
	}
	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("remote sync: encode request: %w", err)
	}

	status := 0
	err = retry.Do(ctx, c.retryCfg, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		includeCredentials(httpReq)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		status = resp.StatusCode
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("remote sync %s: %w", req.StatusType, err)
	}
	return status, nil
}

func isTransient(err error) bool {
	return !errors.Is(err, context.Canceled)
}
