package domain

import "fmt"

// RunState is a stage of a check run.
type RunState string

const (
	StateLoaded         RunState = "loaded"
	StateSyntaxChecked  RunState = "syntax_checked"
	StateRulesEvaluated RunState = "rules_evaluated"
	StateReported       RunState = "reported"
	StateCancelled      RunState = "cancelled"
)

var nextState = map[RunState]RunState{
	StateLoaded:         StateSyntaxChecked,
	StateSyntaxChecked:  StateRulesEvaluated,
	StateRulesEvaluated: StateReported,
}

// CheckRun tracks the strictly sequential stages of one check.
type CheckRun struct {
	state RunState
}

// NewCheckRun starts a run in the Loaded state.
func NewCheckRun() *CheckRun {
	return &CheckRun{state: StateLoaded}
}

func (r *CheckRun) State() RunState { return r.state }

// Advance moves to the next stage. Only the successor of the current stage
// is accepted, and terminal states accept nothing.
func (r *CheckRun) Advance(to RunState) error {
	if to == StateCancelled && r.state != StateReported && r.state != StateCancelled {
		r.state = StateCancelled
		return nil
	}
	if next, ok := nextState[r.state]; !ok || next != to {
		return fmt.Errorf("invalid run transition %s -> %s", r.state, to)
	}
	r.state = to
	return nil
}
