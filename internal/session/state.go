package session

// State is the state of an answer session.
type State int

const (
	// Answering: the current question is shown, a choice may be set.
	Answering State = iota
	// Submitting: exactly one submission is in flight, inputs are disabled.
	Submitting
	// Failed: the last submission failed; index and choice are kept.
	Failed
	// Complete: every question was answered. Terminal.
	Complete
)

func (s State) String() string {
	switch s {
	case Answering:
		return "answering"
	case Submitting:
		return "submitting"
	case Failed:
		return "error"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}
