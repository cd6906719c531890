package answers

// Gate is the two-step confirm/cancel interaction in front of submission.
// It has no side effects of its own; Confirm only tells the caller to submit.
type Gate struct {
	canSubmit bool
	pending   bool
}

// NewGate creates a gate; canSubmit false disables manual submission entirely.
func NewGate(canSubmit bool) Gate {
	return Gate{canSubmit: canSubmit}
}

// CanSubmit reports whether manual submission is offered.
func (g *Gate) CanSubmit() bool {
	return g.canSubmit
}

// Request opens the confirmation step. It returns false when submission is
// not offered.
func (g *Gate) Request() bool {
	if !g.canSubmit {
		return false
	}
	g.pending = true
	return true
}

// Pending reports whether a confirmation is awaiting an answer.
func (g *Gate) Pending() bool {
	return g.pending
}

// Confirm closes the step and reports whether the caller should submit now.
func (g *Gate) Confirm() bool {
	if !g.pending {
		return false
	}
	g.pending = false
	return true
}

// Cancel closes the step without submitting.
func (g *Gate) Cancel() {
	g.pending = false
}
