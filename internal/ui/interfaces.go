package ui

import (
	"context"

	"github.com/shhac/oltea/internal/librarian"
)

// RequestService defines the merge-request operations used by the UI layer.
// *librarian.Client and *demo.Service satisfy this interface.
type RequestService interface {
	Username() string
	SetFetchLimit(limit int)
	ListRequests(ctx context.Context) ([]librarian.MergeRequest, error)
	DeclineRequest(ctx context.Context, id int, comment string) error
	CommentOnRequest(ctx context.Context, id int, comment string) error
	ClaimRequest(ctx context.Context, id int) (*librarian.ClaimResult, error)
	UnassignRequest(ctx context.Context, id int) (*librarian.UnassignResult, error)
}
