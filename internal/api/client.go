// Package api is the HTTP client of the remote quiz service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout       = 15 * time.Second
	DefaultSubmitTimeout = 10 * time.Second
)

var (
	ErrNetwork            = errors.New("quiz service unreachable")
	ErrTimeout            = errors.New("quiz service timed out")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ServerError is a non-2xx answer of the quiz service.
type ServerError struct {
	StatusCode int
	Detail     string // server-provided detail, or a generic message
}

func (e *ServerError) Error() string {
	return e.Detail
}

// IsNotFound reports whether err is a 404 answer of the quiz service.
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client talks to the quiz service. Calls are never retried.
type Client struct {
	baseURL       string
	timeout       time.Duration
	submitTimeout time.Duration
	httpClient    *http.Client
}

// NewClient returns a client for the service at baseURL, e.g.
// "http://localhost:8000". Deadlines are applied per call.
func NewClient(baseURL string, timeout, submitTimeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if submitTimeout <= 0 {
		submitTimeout = DefaultSubmitTimeout
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		timeout:       timeout,
		submitTimeout: submitTimeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   3 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// request is one call to the quiz service.
type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	timeout     time.Duration
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	timeout := r.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newServerError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func transportError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func newServerError(resp *http.Response) *ServerError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	detail := parseDetail(body)
	if detail == "" {
		detail = fmt.Sprintf("quiz service returned status %d", resp.StatusCode)
	}

	return &ServerError{StatusCode: resp.StatusCode, Detail: detail}
}

// parseDetail extracts the "detail" field of an error body. Validation
// errors carry a list of {msg} objects instead of a string.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// flexibleID decodes identifiers that the service sends either as a
// number or as a string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}
