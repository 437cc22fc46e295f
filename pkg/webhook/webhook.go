// Package webhook posts scan reports to HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/gotime/pkg/output"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// EventScanCompleted is the event name carried by every payload.
const EventScanCompleted = "scan.completed"

// maxResponseBody caps how much of a response body is kept.
const maxResponseBody = 1 << 20

// Client sends scan reports to webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // uses DefaultTimeout if zero
}

// Payload is the JSON body posted to the endpoint.
type Payload struct {
	Event  string         `json:"event"`
	Status string         `json:"status"`
	Report *output.Report `json:"report"`
}

// NewPayload wraps report. Status is "failures" when any timestamp failed
// to parse and "ok" otherwise.
func NewPayload(report *output.Report) Payload {
	status := "ok"
	if report.HasFailures() {
		status = "failures"
	}
	return Payload{Event: EventScanCompleted, Status: status, Report: report}
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was sent successfully (2xx status).
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts report to a webhook endpoint. Failures are reported in the
// Response rather than returned.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{}
	defer func() {
		resp.Duration = time.Since(start)
		logrus.WithFields(logrus.Fields{
			"url":      opts.URL,
			"status":   resp.StatusCode,
			"duration": resp.Duration,
		}).WithError(resp.Error).Debug("webhook sent")
	}()

	body, err := json.Marshal(NewPayload(report))
	if err != nil {
		resp.Error = fmt.Errorf("failed to marshal report: %w", err)
		return resp
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(body))
	if err != nil {
		resp.Error = fmt.Errorf("failed to create request: %w", err)
		return resp
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "gotime-webhook")
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		resp.Error = fmt.Errorf("request failed: %w", err)
		return resp
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		resp.Error = fmt.Errorf("failed to read response: %w", err)
		return resp
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(data)
	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp
}
