package report

import "strings"

const scopeSeparator = "/"

// scopes tracks a stack of open scopes
type scopes []string

func (s *scopes) push(name string) {
	*s = append(*s, name)
}

// pop removes the innermost scope, if any
func (s *scopes) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

func (s scopes) String() string {
	return strings.Join(s, scopeSeparator)
}
