package demo

import (
	"context"
	"errors"
	"testing"

	"github.com/shhac/oltea/internal/librarian"
)

func TestNewService(t *testing.T) {
	s := NewService()
	if s == nil {
		t.Fatal("NewService returned nil")
	}
	if got := s.Username(); got != demoUsername {
		t.Errorf("Username() = %q, want %q", got, demoUsername)
	}
}

func TestListRequests(t *testing.T) {
	s := NewService()
	reqs, err := s.ListRequests(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) == 0 {
		t.Fatal("expected non-empty queue")
	}
	for _, r := range reqs {
		if r.Status != "Pending" && r.Status != "Assigned" {
			t.Errorf("request #%d has status %q, want open", r.ID, r.Status)
		}
	}
}

func TestDeclineRequest_RemovesFromListing(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	before, _ := s.ListRequests(ctx)
	id := before[0].ID

	if err := s.DeclineRequest(ctx, id, "duplicate of an existing record"); err != nil {
		t.Fatalf("DeclineRequest: %v", err)
	}

	after, _ := s.ListRequests(ctx)
	if len(after) != len(before)-1 {
		t.Errorf("queue length = %d, want %d", len(after), len(before)-1)
	}
	for _, r := range after {
		if r.ID == id {
			t.Errorf("declined request #%d still listed", id)
		}
	}
}

func TestCommentOnRequest_AppendsComment(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	before, _ := s.ListRequests(ctx)
	id := before[0].ID
	count := before[0].CommentCount()

	if err := s.CommentOnRequest(ctx, id, "checking the source records"); err != nil {
		t.Fatalf("CommentOnRequest: %v", err)
	}

	after, _ := s.ListRequests(ctx)
	if got := after[0].CommentCount(); got != count+1 {
		t.Errorf("CommentCount = %d, want %d", got, count+1)
	}
	last := after[0].Comments[after[0].CommentCount()-1]
	if last.Author != demoUsername {
		t.Errorf("comment author = %q, want %q", last.Author, demoUsername)
	}
	if last.Body != "checking the source records" {
		t.Errorf("comment body = %q", last.Body)
	}
}

func TestClaimRequest(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	res, err := s.ClaimRequest(ctx, 9001)
	if err != nil {
		t.Fatalf("ClaimRequest: %v", err)
	}
	if res.Reviewer != demoUsername {
		t.Errorf("Reviewer = %q, want %q", res.Reviewer, demoUsername)
	}
	if res.NewStatus != "Assigned" {
		t.Errorf("NewStatus = %q, want Assigned", res.NewStatus)
	}
}

func TestClaimRequest_AlreadyAssigned(t *testing.T) {
	s := NewService()
	// 8997 is seeded with another reviewer
	_, err := s.ClaimRequest(context.Background(), 8997)
	var statusErr *librarian.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %T, want *StatusError", err)
	}
	if statusErr.Status != "already-assigned" {
		t.Errorf("Status = %q", statusErr.Status)
	}
}

func TestUnassignRequest(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	if _, err := s.ClaimRequest(ctx, 9001); err != nil {
		t.Fatalf("ClaimRequest: %v", err)
	}
	res, err := s.UnassignRequest(ctx, 9001)
	if err != nil {
		t.Fatalf("UnassignRequest: %v", err)
	}
	if res.NewStatus != "Pending" {
		t.Errorf("NewStatus = %q, want Pending", res.NewStatus)
	}

	reqs, _ := s.ListRequests(ctx)
	for _, r := range reqs {
		if r.ID == 9001 && r.Reviewer != "" {
			t.Errorf("Reviewer = %q, want cleared", r.Reviewer)
		}
	}
}

func TestUnknownID(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	if err := s.DeclineRequest(ctx, 999999, ""); err == nil {
		t.Error("expected error for unknown id")
	}
	if err := s.CommentOnRequest(ctx, 999999, "hi"); err == nil {
		t.Error("expected error for unknown id")
	}
	if _, err := s.ClaimRequest(ctx, 999999); err == nil {
		t.Error("expected error for unknown id")
	}
	if _, err := s.UnassignRequest(ctx, 999999); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestSeedRequests_FreshCopies(t *testing.T) {
	a := NewService()
	b := NewService()

	if err := a.DeclineRequest(context.Background(), 9001, ""); err != nil {
		t.Fatalf("DeclineRequest: %v", err)
	}

	reqs, _ := b.ListRequests(context.Background())
	found := false
	for _, r := range reqs {
		if r.ID == 9001 {
			found = true
		}
	}
	if !found {
		t.Error("mutating one service leaked into another")
	}
}
