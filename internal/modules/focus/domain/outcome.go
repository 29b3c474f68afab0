package domain

type OutcomeKind string

const (
	OutcomeNoop        OutcomeKind = "noop"
	OutcomeStarted     OutcomeKind = "started"
	OutcomeTicked      OutcomeKind = "ticked"
	OutcomeCompleted   OutcomeKind = "completed"
	OutcomeInterrupted OutcomeKind = "interrupted"
	OutcomeRedeemed    OutcomeKind = "redeemed"
	OutcomeFailed      OutcomeKind = "failed"
)

// Outcome describes what a transition did. Session is set only when a run
// resolved.
type Outcome struct {
	Kind    OutcomeKind
	Phase   Phase
	Run     Run
	Session *FocusSession
	Pass    string
}

func (o Outcome) Resolved() bool {
	return o.Kind == OutcomeCompleted || o.Kind == OutcomeFailed
}
