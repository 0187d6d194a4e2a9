package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/oltea/internal/config"
	"github.com/shhac/oltea/internal/librarian"
)

// fakeService counts calls and returns canned results, so tests can assert
// both what the UI did and what it deliberately did not do.
type fakeService struct {
	declines  int
	comments  int
	claims    int
	unassigns int

	failWith error
}

func (f *fakeService) Username() string { return "testlib" }

func (f *fakeService) SetFetchLimit(_ int) {}

func (f *fakeService) ListRequests(_ context.Context) ([]librarian.MergeRequest, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return sampleRequests(), nil
}

func (f *fakeService) DeclineRequest(_ context.Context, _ int, _ string) error {
	f.declines++
	return f.failWith
}

func (f *fakeService) CommentOnRequest(_ context.Context, _ int, _ string) error {
	f.comments++
	return f.failWith
}

func (f *fakeService) ClaimRequest(_ context.Context, _ int) (*librarian.ClaimResult, error) {
	f.claims++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &librarian.ClaimResult{Reviewer: "testlib", NewStatus: "Assigned"}, nil
}

func (f *fakeService) UnassignRequest(_ context.Context, _ int) (*librarian.UnassignResult, error) {
	f.unassigns++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &librarian.UnassignResult{NewStatus: "Pending"}, nil
}

func newTestApp(t *testing.T) (App, *fakeService) {
	t.Helper()
	svc := &fakeService{}
	zero := 0
	cfg := &config.Config{
		BaseURL:      "https://example.org",
		FetchLimit:   50,
		PollInterval: &zero,
	}
	app := NewApp(svc, cfg)
	app.setSize(120, 40)

	model, _ := app.Update(RequestsLoadedMsg{Requests: sampleRequests()})
	return model.(App), svc
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewApp_PollingFollowsConfig(t *testing.T) {
	t.Run("zero interval disables polling", func(t *testing.T) {
		zero := 0
		app := NewApp(&fakeService{}, &config.Config{PollInterval: &zero})
		if app.pollEnabled {
			t.Error("pollIntervalMs 0 must disable polling")
		}
	})

	t.Run("unset interval polls at the default rate", func(t *testing.T) {
		app := NewApp(&fakeService{}, &config.Config{})
		if !app.pollEnabled {
			t.Error("unset interval should enable polling")
		}
		if app.pollInterval != config.DefaultPollIntervalMs*time.Millisecond {
			t.Errorf("pollInterval = %v, want the default", app.pollInterval)
		}
	})
}

func TestRequestsLoaded_PopulatesQueue(t *testing.T) {
	app, _ := newTestApp(t)

	if app.registry.Len() != 2 {
		t.Fatalf("registry has %d rows, want 2", app.registry.Len())
	}
	if app.queue.state != stateLoaded {
		t.Errorf("queue state = %v, want stateLoaded", app.queue.state)
	}
	if id := app.queue.CursorID(); id != 101 {
		t.Errorf("CursorID() = %d, want 101", id)
	}
}

func TestRequestsError_ShowsErrorState(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(RequestsErrorMsg{Err: errors.New("connection refused")})
	app = model.(App)

	if app.queue.state != stateError {
		t.Errorf("queue state = %v, want stateError", app.queue.state)
	}
}

func TestSelection_BindsCommentsPanel(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(RequestSelectedAndAdvanceMsg{ID: 101})
	app = model.(App)

	if app.selectedID != 101 {
		t.Errorf("selectedID = %d, want 101", app.selectedID)
	}
	if app.focused != PanelComments {
		t.Errorf("focused = %v, want PanelComments", app.focused)
	}
	if row := app.comments.Row(); row == nil || row.ID != 101 {
		t.Error("comments panel not bound to request 101")
	}
}

// -- Decline flow --

func TestDeclineKey_OpensOverlayWithoutNetworkCall(t *testing.T) {
	app, svc := newTestApp(t)

	model, _ := app.Update(keyRune('x'))
	app = model.(App)

	if !app.reasonOverlay.IsVisible() {
		t.Fatal("x should open the reason overlay")
	}
	if svc.declines != 0 {
		t.Error("opening the overlay must not call the service")
	}
}

func TestDeclineOverlayEsc_CancelsWithoutNetworkCall(t *testing.T) {
	app, svc := newTestApp(t)

	model, _ := app.Update(keyRune('x'))
	app = model.(App)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)

	if app.reasonOverlay.IsVisible() {
		t.Error("Esc should dismiss the overlay")
	}
	if cmd == nil {
		t.Fatal("expected a cancellation message command")
	}
	if _, ok := cmd().(DeclineCancelledMsg); !ok {
		t.Error("Esc should emit DeclineCancelledMsg")
	}
	if svc.declines != 0 {
		t.Error("cancelling must never call the service")
	}
	if app.registry.Get(101) == nil {
		t.Error("cancelled decline must leave the row in place")
	}
}

func TestDeclineDone_RemovesExactlyThatRow(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)

	model, _ := app.Update(DeclineDoneMsg{ID: 101})
	app = model.(App)

	if app.registry.Get(101) != nil {
		t.Error("declined row should be removed")
	}
	if app.registry.Get(102) == nil {
		t.Error("other rows must survive")
	}
	if app.selectedID != 0 {
		t.Error("selection on the declined row should clear")
	}
	if app.statusBar.statusMessage == "" {
		t.Error("success should flash the status bar")
	}
}

func TestDeclineErr_KeepsRowAndFlashes(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(DeclineErrMsg{ID: 101, Err: errors.New("service returned HTTP 500")})
	app = model.(App)

	if app.registry.Get(101) == nil {
		t.Error("failed decline must leave the row in place")
	}
	if app.statusBar.statusMessage == "" {
		t.Error("failure must flash the status bar")
	}
}

// -- Comment flow --

func TestEmptyCommentSubmit_IsNoOp(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)

	m := app.comments
	m, _ = m.Update(keyRune('i'))
	if !m.InInsertMode() {
		t.Fatal("i should enter insert mode")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("submitting an empty comment must emit nothing")
	}
	if !m.InInsertMode() {
		t.Error("empty submit should stay in insert mode")
	}
}

func TestWhitespaceCommentSubmit_IsNoOp(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)

	m := app.comments
	m, _ = m.Update(keyRune('i'))
	m.textarea.SetValue("   \n  ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("whitespace-only comment must emit nothing")
	}
}

func TestCommentSubmit_EmitsTrimmedBody(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)

	m := app.comments
	m, _ = m.Update(keyRune('i'))
	m.textarea.SetValue("  looks right  ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected a submit message")
	}
	msg, ok := cmd().(CommentSubmitMsg)
	if !ok {
		t.Fatalf("got %T, want CommentSubmitMsg", cmd())
	}
	if msg.ID != 101 || msg.Body != "looks right" {
		t.Errorf("CommentSubmitMsg = %+v", msg)
	}
}

func TestCommentDone_UpdatesRowAndClearsInput(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)
	app.comments.textarea.SetValue("looks right")

	before := app.registry.Get(101).CommentCount

	model, _ := app.Update(CommentDoneMsg{ID: 101, Body: "looks right"})
	app = model.(App)

	row := app.registry.Get(101)
	if row.CommentCount != before+1 {
		t.Errorf("CommentCount = %d, want %d", row.CommentCount, before+1)
	}
	if row.Comments[0].Body != "looks right" {
		t.Errorf("newest comment = %q, want the submitted body", row.Comments[0].Body)
	}
	if row.Comments[0].Author != "testlib" {
		t.Errorf("comment author = %q, want the authenticated librarian", row.Comments[0].Author)
	}
	if app.comments.InputValue() != "" {
		t.Error("input should clear on success")
	}
}

func TestCommentErr_KeepsDraftAndFlashes(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)
	app.comments.textarea.SetValue("looks right")

	before := app.registry.Get(101).CommentCount

	model, _ := app.Update(CommentErrMsg{ID: 101, Err: errors.New("service returned HTTP 500")})
	app = model.(App)

	if app.comments.InputValue() != "looks right" {
		t.Error("failed comment must keep the draft for resubmission")
	}
	if app.registry.Get(101).CommentCount != before {
		t.Error("failed comment must not change the counter")
	}
	if app.statusBar.statusMessage == "" {
		t.Error("failure must flash the status bar")
	}
}

// -- Claim / unassign flow --

func TestClaimDone_SetsReviewerAndHidesResolve(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(ClaimDoneMsg{ID: 101, Reviewer: "testlib", NewStatus: "Assigned"})
	app = model.(App)

	row := app.registry.Get(101)
	if row.Reviewer != "testlib" || row.Status != "Assigned" {
		t.Errorf("row = %q/%q, want testlib/Assigned", row.Reviewer, row.Status)
	}
	if row.ResolveVisible {
		t.Error("claimed row must not offer resolve")
	}
}

func TestUnassignDone_RestoresResolve(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(UnassignDoneMsg{ID: 102, NewStatus: "Pending"})
	app = model.(App)

	row := app.registry.Get(102)
	if row.Reviewer != "" || row.Status != "Pending" {
		t.Errorf("row = %q/%q, want empty/Pending", row.Reviewer, row.Status)
	}
	if !row.ResolveVisible {
		t.Error("unassigned row must offer resolve again")
	}
}

func TestUnassignKey_DeadWithoutReviewer(t *testing.T) {
	app, svc := newTestApp(t)
	// Cursor sits on 101, which has no reviewer.

	_, cmd := app.Update(keyRune('u'))

	if cmd != nil {
		t.Error("u on an unreviewed row must do nothing")
	}
	if svc.unassigns != 0 {
		t.Error("u on an unreviewed row must not call the service")
	}
}

func TestClaimErr_Flashes(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(ClaimErrMsg{ID: 101, Err: errors.New("service reported status \"already-assigned\"")})
	app = model.(App)

	if app.statusBar.statusMessage == "" {
		t.Error("claim failure must flash the status bar")
	}
	if app.registry.Get(101).Reviewer != "" {
		t.Error("claim failure must not touch the row")
	}
}

func TestUnassignErr_Flashes(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(UnassignErrMsg{ID: 102, Err: errors.New("service returned HTTP 500")})
	app = model.(App)

	if app.statusBar.statusMessage == "" {
		t.Error("unassign failure must flash the status bar")
	}
	if app.registry.Get(102).Reviewer != "mekBot" {
		t.Error("unassign failure must not touch the row")
	}
}

// -- Comment visibility toggle --

func TestToggleOlderKey_FlipsRowState(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)

	model, _ := app.Update(keyRune('c'))
	app = model.(App)
	if !app.registry.Get(101).ShowAllComments {
		t.Error("c should expand older comments")
	}

	model, _ = app.Update(keyRune('c'))
	app = model.(App)
	if app.registry.Get(101).ShowAllComments {
		t.Error("second c should collapse older comments")
	}
}

// -- Command factories --

func TestClaimRequestCmd_ReportsServerState(t *testing.T) {
	svc := &fakeService{}

	msg := claimRequestCmd(svc, 101)()

	done, ok := msg.(ClaimDoneMsg)
	if !ok {
		t.Fatalf("got %T, want ClaimDoneMsg", msg)
	}
	if done.Reviewer != "testlib" || done.NewStatus != "Assigned" {
		t.Errorf("ClaimDoneMsg = %+v", done)
	}
	if svc.claims != 1 {
		t.Errorf("claims = %d, want 1", svc.claims)
	}
}

func TestDeclineRequestCmd_ErrorBranch(t *testing.T) {
	svc := &fakeService{failWith: errors.New("service returned HTTP 500")}

	msg := declineRequestCmd(svc, 101, "dup")()

	errMsg, ok := msg.(DeclineErrMsg)
	if !ok {
		t.Fatalf("got %T, want DeclineErrMsg", msg)
	}
	if errMsg.ID != 101 {
		t.Errorf("DeclineErrMsg.ID = %d, want 101", errMsg.ID)
	}
}

func TestCommentRequestCmd_CarriesBody(t *testing.T) {
	svc := &fakeService{}

	msg := commentRequestCmd(svc, 101, "looks right")()

	done, ok := msg.(CommentDoneMsg)
	if !ok {
		t.Fatalf("got %T, want CommentDoneMsg", msg)
	}
	if done.ID != 101 || done.Body != "looks right" {
		t.Errorf("CommentDoneMsg = %+v", done)
	}
}

// -- Background polling --

func TestPollLoaded_MergesAndPreservesSelection(t *testing.T) {
	app, _ := newTestApp(t)
	app.selectRequest(101)
	app.registry.ToggleComments(101)

	refreshed := sampleRequests()
	refreshed = append(refreshed, librarian.MergeRequest{ID: 103, Title: "New", Status: "Pending"})

	model, _ := app.Update(pollRequestsLoadedMsg{Requests: refreshed})
	app = model.(App)

	if app.registry.Len() != 3 {
		t.Fatalf("registry has %d rows, want 3", app.registry.Len())
	}
	if app.selectedID != 101 {
		t.Errorf("selection lost across poll merge: %d", app.selectedID)
	}
	if !app.registry.Get(101).ShowAllComments {
		t.Error("expanded comments state lost across poll merge")
	}
	if row := app.comments.Row(); row == nil || row.ID != 101 {
		t.Error("comments panel not rebound after poll merge")
	}
}
