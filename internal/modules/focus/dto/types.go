package dto

import "time"

type StartInput struct {
	Duration time.Duration
	TaskID   string
}

type SessionOutput struct {
	ID              string
	StartDate       time.Time
	PlannedDuration time.Duration
	ActualDuration  time.Duration
	CoinsDelta      int64
	Failed          bool
	TaskID          string
}

// OutcomeOutput reports one transition. Session is nil unless the run
// resolved.
type OutcomeOutput struct {
	Outcome string
	Phase   string
	Pass    string
	Session *SessionOutput
	Status  StatusOutput
}

type StatusOutput struct {
	Phase                  string
	Configured             time.Duration
	AccumulatedDistraction time.Duration
	Remaining              time.Duration
	EndsAt                 time.Time
	Progress               float64
	FailingSince           time.Time
	TaskID                 string
}
