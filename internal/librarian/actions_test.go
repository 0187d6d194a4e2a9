package librarian

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// recordingServer captures the last form posted to the merges endpoint and
// replies with a fixed body.
func recordingServer(t *testing.T, reply string) (*httptest.Server, *url.Values) {
	t.Helper()
	form := &url.Values{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		*form = r.PostForm
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, form
}

func TestDeclineRequest_WithReason(t *testing.T) {
	srv, form := recordingServer(t, `{"status":"ok"}`)
	client := newTestClient(srv, "alice", "")

	if err := client.DeclineRequest(context.Background(), 101, "duplicate record"); err != nil {
		t.Fatalf("DeclineRequest: %v", err)
	}
	if form.Get("action") != "decline" {
		t.Errorf("action = %q, want decline", form.Get("action"))
	}
	if form.Get("comment") != "duplicate record" {
		t.Errorf("comment = %q, want reason forwarded", form.Get("comment"))
	}
}

func TestDeclineRequest_EmptyReasonOmitsField(t *testing.T) {
	srv, form := recordingServer(t, `{"status":"ok"}`)
	client := newTestClient(srv, "alice", "")

	if err := client.DeclineRequest(context.Background(), 101, ""); err != nil {
		t.Fatalf("DeclineRequest: %v", err)
	}
	if _, present := (*form)["comment"]; present {
		t.Error("empty reason must not send a comment field")
	}
}

func TestCommentOnRequest(t *testing.T) {
	srv, form := recordingServer(t, `{"status":"ok"}`)
	client := newTestClient(srv, "alice", "")

	if err := client.CommentOnRequest(context.Background(), 55, "looks fine to me"); err != nil {
		t.Fatalf("CommentOnRequest: %v", err)
	}
	if form.Get("action") != "comment" {
		t.Errorf("action = %q, want comment", form.Get("action"))
	}
	if form.Get("mrid") != "55" {
		t.Errorf("mrid = %q, want 55", form.Get("mrid"))
	}
	if form.Get("comment") != "looks fine to me" {
		t.Errorf("comment = %q", form.Get("comment"))
	}
}

func TestClaimRequest_ReturnsServerConfirmedState(t *testing.T) {
	srv, form := recordingServer(t, `{"status":"ok","reviewer":"alice","newStatus":"Assigned"}`)
	client := newTestClient(srv, "alice", "")

	res, err := client.ClaimRequest(context.Background(), 7)
	if err != nil {
		t.Fatalf("ClaimRequest: %v", err)
	}
	if form.Get("action") != "claim" {
		t.Errorf("action = %q, want claim", form.Get("action"))
	}
	if res.Reviewer != "alice" {
		t.Errorf("Reviewer = %q, want alice", res.Reviewer)
	}
	if res.NewStatus != "Assigned" {
		t.Errorf("NewStatus = %q, want Assigned", res.NewStatus)
	}
}

func TestClaimRequest_NonOK(t *testing.T) {
	srv, _ := recordingServer(t, `{"status":"already-assigned"}`)
	client := newTestClient(srv, "alice", "")

	res, err := client.ClaimRequest(context.Background(), 7)
	if res != nil {
		t.Errorf("result = %+v, want nil on failure", res)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %T, want *StatusError", err)
	}
}

func TestUnassignRequest(t *testing.T) {
	srv, form := recordingServer(t, `{"status":"ok","newStatus":"Pending"}`)
	client := newTestClient(srv, "alice", "")

	res, err := client.UnassignRequest(context.Background(), 12)
	if err != nil {
		t.Fatalf("UnassignRequest: %v", err)
	}
	if form.Get("action") != "unassign" {
		t.Errorf("action = %q, want unassign", form.Get("action"))
	}
	if res.NewStatus != "Pending" {
		t.Errorf("NewStatus = %q, want Pending", res.NewStatus)
	}
}
