package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	EventStarted   = "started"
	EventCompleted = "completed"
	EventFailed    = "failed"
)

var (
	// ErrNoResponse means the messenger is disabled or unconfigured.
	ErrNoResponse = errors.New("no response from messenger")
	ErrAPI        = errors.New("slack api error")
)

// APIError carries the error string of a response with ok=false.
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack api error: %s", e.Code)
}

func (e *APIError) Unwrap() error { return ErrAPI }

// Describe words a test-message failure for the settings screen.
func Describe(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return "Success!"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("The Slack API call failed with error: %s.", apiErr.Code)
	default:
		return "The API call failed."
	}
}

type Event struct {
	Kind    string
	Planned time.Duration
	Actual  time.Duration
	Coins   int64
	EndsAt  time.Time
}

// Response is the subset of a Slack Web API reply the app looks at.
type Response struct {
	OK    bool
	Error string
}

// Err turns a failed response into an APIError.
func (r *Response) Err() error {
	if r == nil {
		return ErrNoResponse
	}
	if !r.OK {
		return &APIError{Code: r.Error}
	}
	return nil
}

// Note is an Event rendered for people.
type Note struct {
	Kind string
	Text string
	// Status is empty when the external status should be cleared.
	Status           string
	StatusExpiration time.Time
}

func (n Note) ClearsStatus() bool {
	return n.Kind == EventCompleted || n.Kind == EventFailed
}
