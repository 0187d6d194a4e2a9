package librarian

import "time"

// Comment is a single librarian comment on a merge request.
type Comment struct {
	Author    string    `json:"username"`
	Body      string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// MergeRequest is one entry in the moderation queue.
type MergeRequest struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Submitter string    `json:"submitter"`
	Status    string    `json:"status"` // e.g. "Pending", "Assigned", "Merged", "Declined"
	Reviewer  string    `json:"reviewer"`
	Comments  []Comment `json:"comments"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentCount returns the number of comments on the request.
func (r MergeRequest) CommentCount() int {
	return len(r.Comments)
}

// ClaimResult is the server-confirmed outcome of a claim.
type ClaimResult struct {
	Reviewer  string
	NewStatus string
}

// UnassignResult is the server-confirmed outcome of an unassignment.
type UnassignResult struct {
	NewStatus string
}
