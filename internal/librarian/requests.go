package librarian

import (
	"context"
	"fmt"
)

// listResponse is the JSON body returned by the queue listing endpoint.
type listResponse struct {
	Status   string         `json:"status"`
	Requests []MergeRequest `json:"requests"`
}

// ListRequests fetches the open moderation queue, newest first.
func (c *Client) ListRequests(ctx context.Context) ([]MergeRequest, error) {
	path := fmt.Sprintf("%s/list.json?mode=open&limit=%d", mergesPath, c.fetchLimit)

	var body listResponse
	if err := c.getJSON(ctx, path, &body); err != nil {
		return nil, fmt.Errorf("list merge requests: %w", err)
	}
	if body.Status != "ok" {
		return nil, &StatusError{Action: "list", Status: body.Status}
	}
	return body.Requests, nil
}
