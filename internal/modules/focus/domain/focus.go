package domain

import (
	"time"
)

// MinimumDuration is the shortest run Start accepts. Runs are configured in
// whole minutes.
const MinimumDuration = time.Minute

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFailingGrace
	// PhaseResolved is never persisted. It only appears in an Outcome.
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFailingGrace:
		return "failing"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// FocusSession is the historical record of one resolved run.
type FocusSession struct {
	ID              string
	StartDate       time.Time
	PlannedDuration time.Duration
	ActualDuration  time.Duration
	CoinsDelta      int64
	Failed          bool
	TaskID          string
}

// Run is the transient state of the current attempt. Zero times mean unset.
type Run struct {
	TimerStart             time.Time
	Configured             time.Duration
	AccumulatedDistraction time.Duration
	Failing                bool
	FailingInstant         time.Time
	FailingSessionStart    time.Time
	TaskID                 string
}

func (r Run) Phase() Phase {
	switch {
	case r.Failing:
		return PhaseFailingGrace
	case !r.TimerStart.IsZero():
		return PhaseRunning
	default:
		return PhaseIdle
	}
}

func (r Run) start() time.Time {
	if r.Failing {
		return r.FailingSessionStart
	}
	return r.TimerStart
}

// EndsAt is the instant the run expires. Forgiven distraction does not move it.
func (r Run) EndsAt() time.Time {
	if r.Phase() == PhaseIdle {
		return time.Time{}
	}
	return r.start().Add(r.Configured)
}

// Expired reports whether now is strictly past the end of a running run.
func (r Run) Expired(now time.Time) bool {
	return r.Phase() == PhaseRunning && now.After(r.EndsAt())
}

func (r Run) Remaining(now time.Time) time.Duration {
	if r.Phase() == PhaseIdle {
		return 0
	}
	left := r.EndsAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Progress is the elapsed fraction of the configured duration in [0, 1].
func (r Run) Progress(now time.Time) float64 {
	if r.Phase() == PhaseIdle || r.Configured <= 0 {
		return 0
	}
	elapsed := now.Sub(r.start())
	if r.Failing {
		elapsed = r.FailingInstant.Sub(r.start())
	}
	p := float64(elapsed) / float64(r.Configured)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// DistractionLength measures the absence that began at FailingInstant. Time
// past the planned end of the run does not count.
func (r Run) DistractionLength(now time.Time) time.Duration {
	end := r.FailingSessionStart.Add(r.Configured)
	if now.Before(end) {
		end = now
	}
	d := end.Sub(r.FailingInstant)
	if d < 0 {
		return 0
	}
	return d
}

// Idle keeps the configured duration so the next run defaults to it.
func (r Run) Idle() Run {
	return Run{Configured: r.Configured}
}

// Interrupted moves a running run into the grace window.
func (r Run) Interrupted(now time.Time) Run {
	next := r
	next.Failing = true
	next.FailingInstant = now
	next.FailingSessionStart = r.TimerStart
	next.TimerStart = time.Time{}
	return next
}

// Redeemed resumes the run after a forgiven absence.
func (r Run) Redeemed(distraction time.Duration) Run {
	next := r
	next.AccumulatedDistraction += distraction
	next.TimerStart = r.FailingSessionStart
	next.Failing = false
	next.FailingInstant = time.Time{}
	next.FailingSessionStart = time.Time{}
	return next
}

// CompletedFocus is the focused time of a run that ran out its clock.
func (r Run) CompletedFocus() time.Duration {
	return r.Configured - r.AccumulatedDistraction
}

// FailedFocus is the focused time of a run that failed during its grace
// window.
func (r Run) FailedFocus() time.Duration {
	d := r.FailingInstant.Sub(r.FailingSessionStart) - r.AccumulatedDistraction
	if d < 0 {
		return 0
	}
	return d
}
