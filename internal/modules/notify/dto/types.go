package dto

import "time"

const (
	EventStarted   = "started"
	EventCompleted = "completed"
	EventFailed    = "failed"
)

// Event is one lifecycle change worth telling the outside world about.
type Event struct {
	Kind    string
	Planned time.Duration
	Actual  time.Duration
	Coins   int64
	EndsAt  time.Time
}

// ProbeOutput is the outcome of a test message, worded for the user.
type ProbeOutput struct {
	OK      bool
	Message string
}

type PluginOutput struct {
	Name         string
	Version      string
	Binary       string
	Enabled      bool
	Capabilities []string
}

type DoctorCheckOutput struct {
	Name    string
	Healthy bool
	Message string
}
