// Package demo provides an in-memory RequestService for demo mode.
// Unlike a read-only mock, writes mutate the fake queue so every flow in
// the UI can be exercised without credentials or a network.
package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shhac/oltea/internal/librarian"
)

// Service implements ui.RequestService against a seeded fake queue.
type Service struct {
	mu       sync.Mutex
	username string
	requests []librarian.MergeRequest
	now      func() time.Time
}

// NewService creates a Service populated with fake merge requests.
func NewService() *Service {
	return &Service{
		username: demoUsername,
		requests: seedRequests(),
		now:      time.Now,
	}
}

func (s *Service) Username() string { return s.username }

// SetFetchLimit is a no-op; the demo queue is small.
func (s *Service) SetFetchLimit(_ int) {}

// ListRequests returns the open entries of the fake queue, newest first.
// Declined and merged entries drop out of the listing, mirroring the
// mode=open filter of the real endpoint.
func (s *Service) ListRequests(_ context.Context) ([]librarian.MergeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	open := make([]librarian.MergeRequest, 0, len(s.requests))
	for _, r := range s.requests {
		if r.Status == "Pending" || r.Status == "Assigned" {
			open = append(open, r)
		}
	}
	return open, nil
}

// DeclineRequest closes a fake merge request. The reason, if any, is
// recorded as a final comment.
func (s *Service) DeclineRequest(_ context.Context, id int, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(id)
	if err != nil {
		return err
	}
	if comment != "" {
		r.Comments = append(r.Comments, librarian.Comment{
			Author: s.username, Body: comment, CreatedAt: s.now(),
		})
	}
	r.Status = "Declined"
	return nil
}

// CommentOnRequest appends a comment authored by the demo librarian.
func (s *Service) CommentOnRequest(_ context.Context, id int, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(id)
	if err != nil {
		return err
	}
	r.Comments = append(r.Comments, librarian.Comment{
		Author: s.username, Body: comment, CreatedAt: s.now(),
	})
	return nil
}

// ClaimRequest assigns the demo librarian as reviewer.
func (s *Service) ClaimRequest(_ context.Context, id int) (*librarian.ClaimResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if r.Reviewer != "" && r.Reviewer != s.username {
		return nil, &librarian.StatusError{Action: "claim", Status: "already-assigned"}
	}
	r.Reviewer = s.username
	r.Status = "Assigned"
	return &librarian.ClaimResult{Reviewer: r.Reviewer, NewStatus: r.Status}, nil
}

// UnassignRequest clears the reviewer and reopens the request.
func (s *Service) UnassignRequest(_ context.Context, id int) (*librarian.UnassignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.find(id)
	if err != nil {
		return nil, err
	}
	r.Reviewer = ""
	r.Status = "Pending"
	return &librarian.UnassignResult{NewStatus: r.Status}, nil
}

// find returns a pointer into the backing slice. Callers hold s.mu.
func (s *Service) find(id int) (*librarian.MergeRequest, error) {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return &s.requests[i], nil
		}
	}
	return nil, fmt.Errorf("demo: merge request #%d not found", id)
}
