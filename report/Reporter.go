// Package report implements Reporters, which receive the scalar results
// of evaluating and tuning policies
package report

// Reporter receives named scalar results. Results are grouped into
// nested scopes, such as one scope per evaluated policy.
type Reporter interface {
	// EnterScope opens a new scope nested in the current one
	EnterScope(name string)

	// LeaveScope closes the innermost open scope
	LeaveScope()

	// Result reports a named value in the current scope
	Result(name string, value float64)
}

// Nop is a Reporter which discards everything
type Nop struct{}

func (Nop) EnterScope(string)      {}
func (Nop) LeaveScope()            {}
func (Nop) Result(string, float64) {}

// Multi fans out everything reported to each of its Reporters in order
type Multi []Reporter

// EnterScope implements the Reporter interface
func (m Multi) EnterScope(name string) {
	for _, r := range m {
		r.EnterScope(name)
	}
}

// LeaveScope implements the Reporter interface
func (m Multi) LeaveScope() {
	for _, r := range m {
		r.LeaveScope()
	}
}

// Result implements the Reporter interface
func (m Multi) Result(name string, value float64) {
	for _, r := range m {
		r.Result(name, value)
	}
}

// OrNop returns r, or Nop if r is nil
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}
	return r
}
