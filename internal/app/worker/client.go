// Package worker is the client for the remote extraction worker. The
// worker is an opaque collaborator: it takes a video ID and returns the
// transcript, or a detail string explaining why it could not.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"yourtranscript/internal/app/model"
)

// Error is a failure reported by the worker itself (a non-2xx response
// carrying a detail message), as opposed to a transport failure.
type Error struct {
	Detail     string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("worker returned %d: %s", e.StatusCode, e.Detail)
}

// ExtractResult is a successful worker response.
type ExtractResult struct {
	VideoID  string                    `json:"video_id"`
	Segments []model.TranscriptSegment `json:"segments"`
	Language string                    `json:"language"`
}

// Client calls the remote extraction worker over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a worker client. The synchronous extract call has no
// deadline of its own beyond the transport default: its failure is
// user-visible, so it is allowed to take as long as extraction takes.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

type extractRequest struct {
	VideoID string `json:"video_id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Extract performs a synchronous extraction. A non-2xx response is
// returned as *Error with the worker's detail; anything else (refused
// connection, timeout) comes back as a plain transport error.
func (c *Client) Extract(ctx context.Context, videoID string) (*ExtractResult, error) {
	body, err := json.Marshal(extractRequest{VideoID: videoID})
	if err != nil {
		return nil, fmt.Errorf("marshal extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("worker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		detail := "Extraction failed"
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			detail = errResp.Detail
		}
		return nil, &Error{Detail: detail, StatusCode: resp.StatusCode}
	}

	var result ExtractResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode worker response: %w", err)
	}
	return &result, nil
}
