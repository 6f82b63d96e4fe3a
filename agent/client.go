// Package agent is the client side of the career agent's action-invocation
// protocol: named actions with a parameter bag, returning either an
// in-progress status or a complete result in the hybrid text+A2UI format.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quest/log"
)

// Action status values.
const (
	StatusInProgress = "inProgress"
	StatusComplete   = "complete"
)

// ActionResult is the agent's reply to one invocation. Result holds the
// hybrid-format response string when Status is complete.
type ActionResult struct {
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
}

// SearchParams are the parameters of the search_jobs action.
type SearchParams struct {
	Role       string `json:"role,omitempty"`
	Location   string `json:"location,omitempty"`
	RemoteOnly bool   `json:"remote_only,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Invoke calls a named action. Failures surface as errors; the caller shows
// a terminal error state rather than retrying.
func (c *Client) Invoke(ctx context.Context, name string, params any) (ActionResult, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return ActionResult{}, err
	}
	if params == nil {
		body = []byte("{}")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/actions/"+name, bytes.NewReader(body))
	if err != nil {
		return ActionResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return ActionResult{}, fmt.Errorf("action %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ActionResult{}, fmt.Errorf("action %s: %w", name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return ActionResult{}, fmt.Errorf("action %s: %s: %s", name, resp.Status, bytes.TrimSpace(data))
	}

	var result ActionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return ActionResult{}, fmt.Errorf("action %s: decode: %w", name, err)
	}
	log.ActionInvoked(name, result.Status, time.Since(start).Milliseconds())
	return result, nil
}

// SearchJobs invokes the job search action.
func (c *Client) SearchJobs(ctx context.Context, p SearchParams) (ActionResult, error) {
	return c.Invoke(ctx, "search_jobs", p)
}

// JobStats invokes the market statistics action.
func (c *Client) JobStats(ctx context.Context) (ActionResult, error) {
	return c.Invoke(ctx, "get_job_stats", nil)
}
