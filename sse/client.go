// Package sse implements consult.Transport over the generation service's
// push protocol: one authenticated POST answered with a long-lived
// text/event-stream response of data-only frames.
package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/visitnotes/consult"
)

const (
	defaultBaseURL   = "http://localhost:8000"
	consultationPath = "/api/consultation"
)

// Interface compliance check.
var _ consult.Transport = (*Client)(nil)

// Client implements [consult.Transport] for the consultation API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// apiRequest is the wire shape of a submission.
type apiRequest struct {
	PatientName string `json:"patient_name"`
	DateOfVisit string `json:"date_of_visit"`
	Notes       string `json:"notes"`
}

// Open submits the consultation and returns a [consult.FrameStream] over the
// server's pushed frames. The notes pass through unmodified.
func (c *Client) Open(ctx context.Context, req consult.ConsultationRequest, credential string) (consult.FrameStream, error) {
	body, err := json.Marshal(apiRequest{
		PatientName: req.PatientName,
		DateOfVisit: req.VisitDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+consultationPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return newStream(ctx, resp.Body), nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sse: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Errorf("sse: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("sse: HTTP %d: %s", resp.StatusCode, apiErr.Detail)
}
