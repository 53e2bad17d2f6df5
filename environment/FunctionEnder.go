package environment

import ts "github.com/samuelfneumann/smallmdp/timestep"

// FunctionEnder ends an episode whenever a function of the entered
// state returns true.
type FunctionEnder struct {
	end     func(state int) bool
	endType ts.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder(f func(state int) bool, endType ts.EndType) Ender {
	return &FunctionEnder{f, endType}
}

// NewTerminalStates returns an Ender which ends episodes upon entering
// any of the given states
func NewTerminalStates(states ...int) Ender {
	terminal := make(map[int]bool, len(states))
	for _, s := range states {
		terminal[s] = true
	}
	return NewFunctionEnder(func(s int) bool { return terminal[s] },
		ts.TerminalStateReached)
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is the appropriate ending
// type.
func (f *FunctionEnder) End(t *ts.TimeStep) bool {
	if f.end(t.State) {
		t.StepType = ts.Last
		t.SetEnd(f.endType)
		return true
	}
	return false
}
