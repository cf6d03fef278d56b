package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"meetsched/internal/meeting"
)

// maxBody bounds how much of a response is read
const maxBody = 1 << 20

// Body is the JSON request sent to the suggestion endpoint
type Body struct {
	Participants []string `json:"participants"`
	Duration     string   `json:"duration"`
	Timezone     string   `json:"timezone"`
}

// TransportError covers failures to reach the endpoint or non-2xx replies
type TransportError struct {
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("suggestion service returned %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("suggestion service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when the reply is not a JSON array of strings
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed suggestion response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client fetches suggested meeting times from a remote service
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for the endpoint at url. A zero timeout means
// requests can wait indefinitely.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint the client posts to
func (c *Client) URL() string {
	return c.url
}

// Suggest posts the request and returns the time labels in the order the
// service sent them
func (c *Client) Suggest(ctx context.Context, req meeting.Request) ([]string, error) {
	payload, err := json.Marshal(Body{
		Participants: req.Participants,
		Duration:     strconv.Itoa(req.Duration),
		Timezone:     req.Timezone,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", bytes.TrimSpace(data))}
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return labels, nil
}
