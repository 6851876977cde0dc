// Package httpx is the outbound HTTP client shared by every collaborator adapter.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const UserAgent = "mobility-context-mvp/1.0"

// StatusError is returned for any upstream response with status >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Client wraps an *http.Client with a per-call timeout and bounded retries.
// MaxAttempts of 1 disables retrying.
type Client struct {
	session     *http.Client
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
}

func NewClient(timeout time.Duration, maxAttempts int) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		session:     &http.Client{},
		timeout:     timeout,
		maxAttempts: maxAttempts,
		backoff:     200 * time.Millisecond,
	}
}

// Do executes the request built by makeReq and returns the response body.
// makeReq is called once per attempt so request bodies can be rebuilt.
func (c *Client) Do(ctx context.Context, makeReq func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq(ctx)
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", UserAgent)
		}

		body, err := c.do(req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) || attempt == c.maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// GetJSON is a convenience for the common GET + Accept: application/json call.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	return c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return b, nil
}

// Transient failures are network errors and 429/5xx responses.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
