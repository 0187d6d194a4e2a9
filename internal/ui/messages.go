package ui

import "github.com/shhac/oltea/internal/librarian"

// -- Queue data --

// RequestsLoadedMsg is sent when the moderation queue has been fetched.
type RequestsLoadedMsg struct {
	Requests []librarian.MergeRequest
}

// RequestsErrorMsg is sent when queue fetching fails.
type RequestsErrorMsg struct {
	Err error
}

// -- Selection --

// RequestSelectedMsg is sent when the user selects a merge request.
type RequestSelectedMsg struct {
	ID int
}

// RequestSelectedAndAdvanceMsg is sent when ENTER selects a request and
// should advance focus to the comments panel.
type RequestSelectedAndAdvanceMsg struct {
	ID int
}

// -- Decline --

// DeclineRequestedMsg is emitted by the reason overlay on submit.
type DeclineRequestedMsg struct {
	ID     int
	Reason string
}

// DeclineCancelledMsg is emitted when the reason overlay is dismissed
// without submitting. No network call has been made.
type DeclineCancelledMsg struct{}

// DeclineDoneMsg is sent when a decline succeeds.
type DeclineDoneMsg struct {
	ID int
}

// DeclineErrMsg is sent when a decline fails.
type DeclineErrMsg struct {
	ID  int
	Err error
}

// -- Comment --

// CommentSubmitMsg is emitted by the comments panel when the user submits
// non-empty comment text.
type CommentSubmitMsg struct {
	ID   int
	Body string
}

// CommentDoneMsg is sent when posting a comment succeeds.
type CommentDoneMsg struct {
	ID   int
	Body string
}

// CommentErrMsg is sent when posting a comment fails.
type CommentErrMsg struct {
	ID  int
	Err error
}

// -- Claim / unassign --

// ClaimDoneMsg carries the server-confirmed reviewer and status.
type ClaimDoneMsg struct {
	ID        int
	Reviewer  string
	NewStatus string
}

// ClaimErrMsg is sent when a claim fails.
type ClaimErrMsg struct {
	ID  int
	Err error
}

// UnassignDoneMsg carries the server-confirmed status after unassignment.
type UnassignDoneMsg struct {
	ID        int
	NewStatus string
}

// UnassignErrMsg is sent when an unassignment fails.
type UnassignErrMsg struct {
	ID  int
	Err error
}

// -- Status bar --

// StatusBarClearMsg clears the temporary flash message if its sequence
// number still matches.
type StatusBarClearMsg struct {
	Seq int
}

// -- Background polling --

// pollTickMsg fires on the poll interval.
type pollTickMsg struct{}

// pollRequestsLoadedMsg carries a background queue refresh.
type pollRequestsLoadedMsg struct {
	Requests []librarian.MergeRequest
}

// pollErrorMsg is sent when a background refresh fails.
type pollErrorMsg struct {
	Err error
}

// -- Overlays --

// HelpClosedMsg is sent when the help overlay is dismissed.
type HelpClosedMsg struct{}
