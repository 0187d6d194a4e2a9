package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/oltea/internal/librarian"
)

// handleDataMsg dispatches all non-key, non-resize messages.
func (m App) handleDataMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// Queue lifecycle
	case RequestsLoadedMsg, RequestsErrorMsg,
		pollTickMsg, pollRequestsLoadedMsg, pollErrorMsg:
		return m.handleQueueMsg(msg)

	// Selection
	case RequestSelectedMsg:
		m.selectRequest(msg.ID)
		return m.withBarState(), nil

	case RequestSelectedAndAdvanceMsg:
		m.selectRequest(msg.ID)
		m.focused = PanelComments
		m.queue.SetFocused(false)
		m.comments.SetFocused(true)
		return m.withBarState(), nil

	// Moderation actions
	case DeclineRequestedMsg, DeclineCancelledMsg, DeclineDoneMsg, DeclineErrMsg,
		CommentSubmitMsg, CommentDoneMsg, CommentErrMsg,
		ClaimDoneMsg, ClaimErrMsg,
		UnassignDoneMsg, UnassignErrMsg:
		return m.handleActionMsg(msg)

	// Status bar
	case StatusBarClearMsg:
		m.statusBar.ClearIfSeqMatch(msg.Seq)
		return m, nil

	// Overlays
	case HelpClosedMsg:
		return m.withBarState(), nil

	// Component plumbing
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.queue, cmd = m.queue.Update(msg)
		return m, cmd

	case list.FilterMatchesMsg:
		var cmd tea.Cmd
		m.queue, cmd = m.queue.Update(msg)
		return m.withBarState(), cmd
	}

	// Anything else (cursor blink etc.) goes to the active input.
	if m.reasonOverlay.IsVisible() {
		var cmd tea.Cmd
		m.reasonOverlay, cmd = m.reasonOverlay.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.comments, cmd = m.comments.Update(msg)
	return m, cmd
}

// -- Queue domain handlers --

// handleQueueMsg handles queue fetching and background polling.
func (m App) handleQueueMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RequestsLoadedMsg:
		m.registry.Reset(msg.Requests)
		m.queue.SetRows(m.registry)
		// Reset replaces row pointers, so the comments panel must rebind.
		m.selectRequest(m.selectedID)
		if !m.initialLoadDone {
			m.initialLoadDone = true
		}
		m.snapshotKnownRequests(msg.Requests)
		if m.pollEnabled {
			return m, pollTickCmd(m.pollInterval)
		}
		return m, nil

	case RequestsErrorMsg:
		m.queue.SetError(msg.Err.Error())
		if m.pollEnabled {
			return m, pollTickCmd(m.pollInterval)
		}
		return m, nil

	case pollTickMsg:
		if m.pollEnabled && m.queue.state == stateLoaded {
			return m, pollFetchRequestsCmd(m.service)
		}
		if m.pollEnabled {
			return m, pollTickCmd(m.pollInterval)
		}
		return m, nil

	case pollRequestsLoadedMsg:
		m.registry.Merge(msg.Requests)
		m.queue.SetRows(m.registry)
		m.selectRequest(m.selectedID)

		var cmds []tea.Cmd
		if m.notifyEnabled {
			newRequests := m.detectNewRequests(msg.Requests)
			if len(newRequests) > 0 {
				cmds = append(cmds, notifyNewRequestsCmd(newRequests, notifySummaryThreshold))
			}
		}
		m.snapshotKnownRequests(msg.Requests)
		if m.pollEnabled {
			cmds = append(cmds, pollTickCmd(m.pollInterval))
		}
		return m, tea.Batch(cmds...)

	case pollErrorMsg:
		clearCmd := m.statusBar.SetTemporaryMessage(
			"Poll error: "+formatUserError(msg.Err.Error()), errorFlashDuration,
		)
		if m.pollEnabled {
			return m, tea.Batch(clearCmd, pollTickCmd(m.pollInterval))
		}
		return m, clearCmd
	}
	return m, nil
}

// notifySummaryThreshold is the max number of individual notifications
// sent per poll before collapsing into a single summary.
const notifySummaryThreshold = 3

// detectNewRequests returns fetched requests whose ids haven't been seen yet.
func (m App) detectNewRequests(requests []librarian.MergeRequest) []librarian.MergeRequest {
	var fresh []librarian.MergeRequest
	for _, req := range requests {
		if !m.knownRequests[req.ID] {
			fresh = append(fresh, req)
		}
	}
	return fresh
}

func (m *App) snapshotKnownRequests(requests []librarian.MergeRequest) {
	for _, req := range requests {
		m.knownRequests[req.ID] = true
	}
}

// -- Moderation action handlers --

// handleActionMsg handles the decline, comment, claim, and unassign flows.
// Every failure branch surfaces a status bar flash; rows are only mutated
// on server-confirmed success.
func (m App) handleActionMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DeclineRequestedMsg:
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("Declining #%d...", msg.ID), flashDuration,
		)
		return m.withBarState(), tea.Batch(
			declineRequestCmd(m.service, msg.ID, msg.Reason), flashCmd,
		)

	case DeclineCancelledMsg:
		// Nothing was sent; just drop back to navigation.
		return m.withBarState(), nil

	case DeclineDoneMsg:
		m.registry.Remove(msg.ID)
		m.queue.SetRows(m.registry)
		if m.selectedID == msg.ID {
			m.selectRequest(0)
		}
		delete(m.knownRequests, msg.ID)
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✓ Declined #%d", msg.ID), flashDuration,
		)
		return m, flashCmd

	case DeclineErrMsg:
		// The row stays in the queue untouched.
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✗ Decline #%d failed: %s", msg.ID, formatUserError(msg.Err.Error())),
			errorFlashDuration,
		)
		return m, flashCmd

	case CommentSubmitMsg:
		flashCmd := m.statusBar.SetTemporaryMessage("Posting comment...", flashDuration)
		return m, tea.Batch(commentRequestCmd(m.service, msg.ID, msg.Body), flashCmd)

	case CommentDoneMsg:
		m.registry.AddComment(msg.ID, librarian.Comment{
			Author:    m.service.Username(),
			Body:      msg.Body,
			CreatedAt: time.Now(),
		})
		m.queue.SetRows(m.registry)
		m.comments.ClearInput()
		m.comments.Refresh()
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✓ Comment added to #%d", msg.ID), flashDuration,
		)
		return m, flashCmd

	case CommentErrMsg:
		// The draft stays in the input so it can be resubmitted.
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✗ Comment on #%d failed: %s", msg.ID, formatUserError(msg.Err.Error())),
			errorFlashDuration,
		)
		return m, flashCmd

	case ClaimDoneMsg:
		m.registry.UpdateRow(msg.ID, &msg.NewStatus, &msg.Reviewer)
		m.queue.SetRows(m.registry)
		m.comments.Refresh()
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✓ Claimed #%d", msg.ID), flashDuration,
		)
		return m, flashCmd

	case ClaimErrMsg:
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✗ Claim #%d failed: %s", msg.ID, formatUserError(msg.Err.Error())),
			errorFlashDuration,
		)
		return m, flashCmd

	case UnassignDoneMsg:
		empty := ""
		m.registry.UpdateRow(msg.ID, &msg.NewStatus, &empty)
		m.queue.SetRows(m.registry)
		m.comments.Refresh()
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✓ Unassigned #%d", msg.ID), flashDuration,
		)
		return m, flashCmd

	case UnassignErrMsg:
		flashCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("✗ Unassign #%d failed: %s", msg.ID, formatUserError(msg.Err.Error())),
			errorFlashDuration,
		)
		return m, flashCmd
	}
	return m, nil
}
