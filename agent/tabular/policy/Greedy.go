package policy

import "github.com/samuelfneumann/smallmdp/valuetable"

// NewGreedy creates a new Greedy policy
func NewGreedy(table *valuetable.Table) *EGreedy {
	return NewEGreedy(0.0, table)
}
