package ui

import "github.com/shhac/oltea/internal/librarian"

// RequestRow is the model behind one queue entry. All mutations go through
// RowRegistry methods; views re-render from this state and never carry
// state of their own.
type RequestRow struct {
	ID           int
	Title        string
	Submitter    string
	Status       string
	Reviewer     string
	CommentCount int
	// Comments are held newest first.
	Comments []librarian.Comment
	URL      string

	// ShowAllComments expands the collapsed older-comments section.
	ShowAllComments bool

	// ResolveVisible tracks whether the resolve affordance is offered.
	// Kept in lockstep with Reviewer: a claimed request never shows it.
	ResolveVisible bool
}

// RowRegistry holds the queue rows keyed by request id, preserving the
// server's ordering for display.
type RowRegistry struct {
	rows  map[int]*RequestRow
	order []int
}

func NewRowRegistry() *RowRegistry {
	return &RowRegistry{rows: make(map[int]*RequestRow)}
}

// Reset replaces the registry contents from a fresh queue fetch.
func (r *RowRegistry) Reset(requests []librarian.MergeRequest) {
	r.rows = make(map[int]*RequestRow, len(requests))
	r.order = r.order[:0]
	for _, req := range requests {
		r.insert(req)
	}
}

// Merge applies a background refresh: new ids are appended, existing rows
// get fresh server data while per-row view state (ShowAllComments) is
// preserved, and ids missing from the fetch are dropped.
func (r *RowRegistry) Merge(requests []librarian.MergeRequest) {
	seen := make(map[int]bool, len(requests))
	for _, req := range requests {
		seen[req.ID] = true
		existing, ok := r.rows[req.ID]
		if !ok {
			r.insert(req)
			continue
		}
		showAll := existing.ShowAllComments
		*existing = buildRow(req)
		existing.ShowAllComments = showAll
	}

	kept := r.order[:0]
	for _, id := range r.order {
		if seen[id] {
			kept = append(kept, id)
		} else {
			delete(r.rows, id)
		}
	}
	r.order = kept
}

func (r *RowRegistry) insert(req librarian.MergeRequest) {
	row := buildRow(req)
	r.rows[req.ID] = &row
	r.order = append(r.order, req.ID)
}

// buildRow converts a fetched merge request into row state. The service
// returns comments oldest first; rows hold them newest first.
func buildRow(req librarian.MergeRequest) RequestRow {
	comments := make([]librarian.Comment, len(req.Comments))
	for i, c := range req.Comments {
		comments[len(req.Comments)-1-i] = c
	}
	return RequestRow{
		ID:             req.ID,
		Title:          req.Title,
		Submitter:      req.Submitter,
		Status:         req.Status,
		Reviewer:       req.Reviewer,
		CommentCount:   req.CommentCount(),
		Comments:       comments,
		URL:            req.URL,
		ResolveVisible: req.Reviewer == "",
	}
}

// Get returns the row for the given id, or nil if unknown.
func (r *RowRegistry) Get(id int) *RequestRow {
	return r.rows[id]
}

// IDs returns the display order.
func (r *RowRegistry) IDs() []int {
	return r.order
}

// Len returns the number of rows.
func (r *RowRegistry) Len() int {
	return len(r.order)
}

// UpdateRow overwrites a row's status and reviewer from server-confirmed
// values. A nil pointer leaves the field untouched; a non-nil pointer
// overwrites, with the empty string clearing the reviewer. Every reviewer
// write re-derives the resolve affordance. Unknown ids are a no-op.
func (r *RowRegistry) UpdateRow(id int, status, reviewer *string) {
	row, ok := r.rows[id]
	if !ok {
		return
	}
	if status != nil {
		row.Status = *status
	}
	if reviewer != nil {
		row.Reviewer = *reviewer
		r.SetResolveVisible(id, row.Reviewer == "")
	}
}

// SetResolveVisible overrides the resolve affordance for a row. Unknown
// ids are a no-op.
func (r *RowRegistry) SetResolveVisible(id int, visible bool) {
	if row, ok := r.rows[id]; ok {
		row.ResolveVisible = visible
	}
}

// Remove drops a row from the registry. Unknown ids are a no-op.
func (r *RowRegistry) Remove(id int) {
	if _, ok := r.rows[id]; !ok {
		return
	}
	delete(r.rows, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// AddComment prepends a comment to a row's history and bumps the counter.
// Unknown ids are a no-op.
func (r *RowRegistry) AddComment(id int, comment librarian.Comment) {
	row, ok := r.rows[id]
	if !ok {
		return
	}
	row.Comments = append([]librarian.Comment{comment}, row.Comments...)
	row.CommentCount++
}

// ToggleComments flips the older-comments visibility for a row and
// reports the new state. Unknown ids are a no-op returning false.
func (r *RowRegistry) ToggleComments(id int) bool {
	row, ok := r.rows[id]
	if !ok {
		return false
	}
	row.ShowAllComments = !row.ShowAllComments
	return row.ShowAllComments
}
