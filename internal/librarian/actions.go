package librarian

import (
	"context"
	"net/url"
)

// DeclineRequest closes a merge request with an optional free-text reason.
// An empty reason is allowed; callers decide whether to prompt for one.
func (c *Client) DeclineRequest(ctx context.Context, id int, comment string) error {
	extra := url.Values{}
	if comment != "" {
		extra.Set("comment", comment)
	}
	_, err := c.postAction(ctx, "decline", id, extra)
	return err
}

// CommentOnRequest appends a comment to a merge request.
func (c *Client) CommentOnRequest(ctx context.Context, id int, comment string) error {
	extra := url.Values{}
	extra.Set("comment", comment)
	_, err := c.postAction(ctx, "comment", id, extra)
	return err
}

// ClaimRequest self-assigns the authenticated librarian as reviewer.
// The result carries the reviewer name and new status reported by the
// service; callers must render what the server confirmed, not what they
// expected.
func (c *Client) ClaimRequest(ctx context.Context, id int) (*ClaimResult, error) {
	resp, err := c.postAction(ctx, "claim", id, nil)
	if err != nil {
		return nil, err
	}
	return &ClaimResult{Reviewer: resp.Reviewer, NewStatus: resp.NewStatus}, nil
}

// UnassignRequest removes the current reviewer from a merge request.
func (c *Client) UnassignRequest(ctx context.Context, id int) (*UnassignResult, error) {
	resp, err := c.postAction(ctx, "unassign", id, nil)
	if err != nil {
		return nil, err
	}
	return &UnassignResult{NewStatus: resp.NewStatus}, nil
}
