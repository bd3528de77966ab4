package authsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	headerServiceName  = "X-Service-Name"
	headerServiceToken = "X-Service-Token"

	maxAttempts = 3
	retryDelay  = 200 * time.Millisecond
)

// Client calls the Auth service's internal API, authenticating with the
// shared service secret. It implements ports.ProfileStatusSyncer.
type Client struct {
	baseURL      string
	serviceName  string
	serviceToken string
	httpClient   *http.Client
	log          zerolog.Logger
}

func NewClient(baseURL, serviceName, serviceToken string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		serviceName:  serviceName,
		serviceToken: serviceToken,
		httpClient:   &http.Client{Timeout: timeout},
		log:          log,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type profileStatusResponse struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// UpdateProfileStatus sets the profile status the Auth service keeps for the
// given user. Transient failures (network errors, 5xx) are retried up to
// maxAttempts before the error is surfaced to the caller.
func (c *Client) UpdateProfileStatus(ctx context.Context, userID, status string) error {
	body, err := json.Marshal(updateStatusRequest{Status: status})
	if err != nil {
		return fmt.Errorf("encode status update: %w", err)
	}

	url := fmt.Sprintf("%s/internal/v1/users/%s/profile-status", c.baseURL, userID)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay * time.Duration(attempt-1)):
			}
		}

		retryable, err := c.doUpdate(ctx, url, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
		c.log.Warn().Err(err).
			Str("user_id", userID).
			Int("attempt", attempt).
			Msg("profile status update failed")
	}
	return fmt.Errorf("update profile status for %s: %w", userID, lastErr)
}

func (c *Client) doUpdate(ctx context.Context, url string, body []byte) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return false, nil
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("auth service returned %d", resp.StatusCode)
	default:
		return false, fmt.Errorf("auth service returned %d", resp.StatusCode)
	}
}

// GetProfileStatus fetches the profile status currently stored by the Auth
// service for the given user.
func (c *Client) GetProfileStatus(ctx context.Context, userID string) (string, error) {
	url := fmt.Sprintf("%s/internal/v1/users/%s/profile-status", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get profile status for %s: %w", userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("auth service returned %d", resp.StatusCode)
	}

	var out profileStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode profile status: %w", err)
	}
	return out.Status, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerServiceName, c.serviceName)
	req.Header.Set(headerServiceToken, c.serviceToken)
}
