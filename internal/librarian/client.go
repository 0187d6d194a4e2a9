// Package librarian implements the REST client for the merge-request
// moderation service. Every action posts a form-encoded body to the merges
// endpoint and decodes a JSON response carrying at minimum a status field,
// "ok" on success.
package librarian

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	mergesPath = "/merges"
	// requestKind identifies librarian merge requests to the endpoint,
	// which also serves other moderation queues.
	requestKind = "merge-requests"

	defaultTimeout    = 15 * time.Second
	defaultFetchLimit = 100
)

// Client talks to the merge-request service.
type Client struct {
	baseURL    string
	username   string
	token      string
	fetchLimit int
	http       *http.Client
}

// NewClient creates a Client for the service at baseURL. The token, if
// non-empty, is sent as a bearer credential on every request. The username
// identifies the librarian and is used as the comment author.
func NewClient(baseURL, username, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		token:      token,
		fetchLimit: defaultFetchLimit,
		http:       &http.Client{Timeout: defaultTimeout},
	}
}

// Username returns the authenticated librarian's name.
func (c *Client) Username() string {
	return c.username
}

// SetFetchLimit caps how many queue entries ListRequests fetches.
func (c *Client) SetFetchLimit(limit int) {
	if limit > 0 {
		c.fetchLimit = limit
	}
}

// StatusError is a reported application failure: the service responded,
// but with a status other than "ok".
type StatusError struct {
	Action string
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: service reported status %q", e.Action, e.Status)
}

// actionResponse is the JSON body returned by the merges endpoint.
type actionResponse struct {
	Status    string `json:"status"`
	Reviewer  string `json:"reviewer"`
	NewStatus string `json:"newStatus"`
}

// postAction posts a form-encoded action for the given request id and
// decodes the response. A non-2xx response or an unparsable body is a
// transport failure; a parsed body with status != "ok" is a *StatusError.
func (c *Client) postAction(ctx context.Context, action string, id int, extra url.Values) (*actionResponse, error) {
	form := url.Values{}
	form.Set("rtype", requestKind)
	form.Set("action", action)
	form.Set("mrid", fmt.Sprintf("%d", id))
	for k, vs := range extra {
		for _, v := range vs {
			form.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+mergesPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s request #%d: %w", action, id, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request #%d: %w", action, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s request #%d: service returned HTTP %d", action, id, resp.StatusCode)
	}

	var body actionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s request #%d: failed to parse response: %w", action, id, err)
	}

	if body.Status != "ok" {
		return nil, &StatusError{Action: action, Status: body.Status}
	}
	return &body, nil
}

// authorize attaches credentials to a request when a token is configured.
func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// getJSON performs a GET and unmarshals the JSON response into dest.
func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
