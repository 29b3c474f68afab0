package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRenderWordsEachEvent(t *testing.T) {
	t.Parallel()
	ends := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	started, err := Render(Event{Kind: EventStarted, Planned: 30 * time.Minute, EndsAt: ends})
	if err != nil {
		t.Fatalf("render started: %v", err)
	}
	if !strings.HasPrefix(started.Text, "Started focusing for 30 minutes, until ") {
		t.Fatalf("unexpected started text: %q", started.Text)
	}
	if started.Status != FocusStatus || !started.StatusExpiration.Equal(ends) || started.ClearsStatus() {
		t.Fatalf("started note must set the focus status: %+v", started)
	}

	completed, err := Render(Event{Kind: EventCompleted, Actual: 25 * time.Minute, Coins: 25})
	if err != nil {
		t.Fatalf("render completed: %v", err)
	}
	if completed.Text != "Completed 25 minutes of focus and earned 25 coins." {
		t.Fatalf("unexpected completed text: %q", completed.Text)
	}
	if completed.Status != "" || !completed.ClearsStatus() {
		t.Fatalf("completion must clear the status: %+v", completed)
	}

	failed, err := Render(Event{Kind: EventFailed, Actual: 30 * time.Second, Coins: -1})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if failed.Text != "Lost focus after less than a minute and lost 1 coin." {
		t.Fatalf("unexpected failed text: %q", failed.Text)
	}

	if _, err := Render(Event{Kind: "paused"}); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
}

func TestResponseErrAndDescribe(t *testing.T) {
	t.Parallel()
	var missing *Response
	if !errors.Is(missing.Err(), ErrNoResponse) {
		t.Fatalf("nil response must be ErrNoResponse")
	}
	if (&Response{OK: true}).Err() != nil {
		t.Fatalf("ok response must not fail")
	}
	apiErr := (&Response{Error: "channel_not_found"}).Err()
	if !errors.Is(apiErr, ErrAPI) {
		t.Fatalf("failed response must wrap ErrAPI: %v", apiErr)
	}

	cases := map[string]error{
		"Success!": nil,
		"The Slack API call failed with error: channel_not_found.": apiErr,
		"The API call failed.":                                     ErrNoResponse,
	}
	for want, err := range cases {
		if got := Describe(err); got != want {
			t.Fatalf("Describe(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestManifestRestrictHonoursCapabilities(t *testing.T) {
	t.Parallel()
	started := Note{Kind: EventStarted, Text: "hi", Status: FocusStatus, StatusExpiration: time.Unix(100, 0)}

	messageOnly := Manifest{Capabilities: []Capability{CapabilityMessage}}
	got, ok := messageOnly.Restrict(started)
	if !ok || got.Text != "hi" || got.Status != "" || !got.StatusExpiration.IsZero() {
		t.Fatalf("message-only plugin must get text only: %+v ok=%v", got, ok)
	}

	statusOnly := Manifest{Capabilities: []Capability{CapabilityStatus}}
	got, ok = statusOnly.Restrict(Note{Kind: EventCompleted, Text: "done"})
	if !ok || got.Text != "" {
		t.Fatalf("status-only plugin must still be told to clear: %+v ok=%v", got, ok)
	}

	if _, ok := messageOnly.Restrict(Note{Kind: EventCompleted}); ok {
		t.Fatalf("nothing left to deliver should be skipped")
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	valid := Manifest{
		Name:         "log",
		Version:      "1.0.0",
		Binary:       "/bin/true",
		SHA256:       strings.Repeat("a", 64),
		Capabilities: []Capability{CapabilityMessage},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}
	bad := valid
	bad.SHA256 = "ABC"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected bad checksum to fail")
	}
	bad = valid
	bad.Capabilities = []Capability{CapabilityMessage, CapabilityMessage}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected duplicate capability to fail")
	}
	bad = valid
	bad.Capabilities = []Capability{"sms"}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected unknown capability to fail")
	}
}
