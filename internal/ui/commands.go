package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/oltea/internal/librarian"
	"github.com/shhac/oltea/internal/notify"
)

// fetchRequestsCmd returns a command that fetches the moderation queue.
func fetchRequestsCmd(svc RequestService) tea.Cmd {
	return func() tea.Msg {
		requests, err := svc.ListRequests(context.Background())
		if err != nil {
			return RequestsErrorMsg{Err: err}
		}
		return RequestsLoadedMsg{Requests: requests}
	}
}

// declineRequestCmd returns a command that declines a request with an
// optional reason.
func declineRequestCmd(svc RequestService, id int, reason string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeclineRequest(context.Background(), id, reason); err != nil {
			return DeclineErrMsg{ID: id, Err: err}
		}
		return DeclineDoneMsg{ID: id}
	}
}

// commentRequestCmd returns a command that posts a comment on a request.
// The submitted body travels with the done message so the row's history
// can be updated without a refetch.
func commentRequestCmd(svc RequestService, id int, body string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.CommentOnRequest(context.Background(), id, body); err != nil {
			return CommentErrMsg{ID: id, Err: err}
		}
		return CommentDoneMsg{ID: id, Body: body}
	}
}

// claimRequestCmd returns a command that claims a request for the
// authenticated librarian.
func claimRequestCmd(svc RequestService, id int) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.ClaimRequest(context.Background(), id)
		if err != nil {
			return ClaimErrMsg{ID: id, Err: err}
		}
		return ClaimDoneMsg{ID: id, Reviewer: res.Reviewer, NewStatus: res.NewStatus}
	}
}

// unassignRequestCmd returns a command that removes the reviewer from a
// request.
func unassignRequestCmd(svc RequestService, id int) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.UnassignRequest(context.Background(), id)
		if err != nil {
			return UnassignErrMsg{ID: id, Err: err}
		}
		return UnassignDoneMsg{ID: id, NewStatus: res.NewStatus}
	}
}

// pollTickCmd returns a command that fires after the given interval to
// trigger background polling.
func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(_ time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// pollFetchRequestsCmd returns a command that refetches the queue for
// background polling.
func pollFetchRequestsCmd(svc RequestService) tea.Cmd {
	return func() tea.Msg {
		requests, err := svc.ListRequests(context.Background())
		if err != nil {
			return pollErrorMsg{Err: err}
		}
		return pollRequestsLoadedMsg{Requests: requests}
	}
}

// notifyNewRequestsCmd sends OS notifications for newly detected requests.
// If more than threshold arrived at once, sends a single summary notification.
func notifyNewRequestsCmd(newRequests []librarian.MergeRequest, threshold int) tea.Cmd {
	return func() tea.Msg {
		if len(newRequests) > threshold {
			_ = notify.Send(
				"oltea",
				fmt.Sprintf("%d new merge requests in the queue", len(newRequests)),
			)
		} else {
			for _, req := range newRequests {
				_ = notify.Send(
					"oltea: New merge request",
					fmt.Sprintf("#%d %s by %s", req.ID, req.Title, req.Submitter),
				)
			}
		}
		return nil
	}
}

// openBrowserCmd returns a command that opens a URL in the default browser.
func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default: // linux, freebsd, etc.
			cmd = exec.Command("xdg-open", url)
		}
		_ = cmd.Start()
		return nil
	}
}
