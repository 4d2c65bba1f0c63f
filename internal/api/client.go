package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Operation names, used to attribute failures to the action the user took.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpStats  = "stats"
)

// ErrNotFound is returned when the API reports an unknown scorecard id.
var ErrNotFound = errors.New("scorecard not found")

// OpError wraps any client failure with the operation that caused it, so a
// notification can say which action failed rather than surfacing a bare
// transport error.
type OpError struct {
	Op     string
	Status int
	Err    error
}

func (e *OpError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("scorecard %s failed: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("scorecard %s failed: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Client talks to the scorecard API. No timeout is imposed here; callers
// bound requests through the context.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the API at baseURL, e.g.
// "http://localhost:8000". A nil httpc falls back to http.DefaultClient.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// List fetches every scorecard.
func (c *Client) List(ctx context.Context) ([]ScorecardPayload, error) {
	var out []ScorecardPayload
	if err := c.do(ctx, OpList, http.MethodGet, "/scorecards/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one scorecard by id.
func (c *Client) Get(ctx context.Context, id string) (ScorecardPayload, error) {
	var out ScorecardPayload
	if err := c.do(ctx, OpGet, http.MethodGet, "/scorecards/"+id, nil, &out); err != nil {
		return ScorecardPayload{}, err
	}
	return out, nil
}

// Create posts a new scorecard and returns the stored record, id included.
func (c *Client) Create(ctx context.Context, p ScorecardPayload) (ScorecardPayload, error) {
	var out ScorecardPayload
	if err := c.do(ctx, OpCreate, http.MethodPost, "/scorecards/", p, &out); err != nil {
		return ScorecardPayload{}, err
	}
	return out, nil
}

// Update replaces the scorecard with the given id and returns the updated
// record as the server stored it.
func (c *Client) Update(ctx context.Context, id string, p ScorecardPayload) (ScorecardPayload, error) {
	var out ScorecardPayload
	if err := c.do(ctx, OpUpdate, http.MethodPut, "/scorecards/"+id, p, &out); err != nil {
		return ScorecardPayload{}, err
	}
	return out, nil
}

// Delete removes the scorecard with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	var out DeleteResponse
	return c.do(ctx, OpDelete, http.MethodDelete, "/scorecards/"+id, nil, &out)
}

// Stats fetches the server-computed roll-up. The dashboard derives its own
// statistics locally; this is advisory and used for drift logging only.
func (c *Client) Stats(ctx context.Context) (StatsPayload, error) {
	var out StatsPayload
	if err := c.do(ctx, OpStats, http.MethodGet, "/scorecards/stats", nil, &out); err != nil {
		return StatsPayload{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &OpError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &OpError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &OpError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &OpError{Op: op, Status: resp.StatusCode, Err: decodeError(resp)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &OpError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var er ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Detail != "" {
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", er.Detail, ErrNotFound)
		}
		return errors.New(er.Detail)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}
