package mdp

import "fmt"

// Gridworld actions
const (
	Left int = iota
	Right
	Up
	Down
	gridworldActions
)

// Cell is a cell of a gridworld, at column X and row Y
type Cell struct {
	X, Y int
}

// Gridworld describes a deterministic gridworld with rows·cols states.
// The cell (x, y) is the state y·cols + x. Moving off the grid leaves
// the agent in place. Every move pays TimeStepReward, except for moves
// into a goal cell, which pay GoalReward. Goal cells are absorbing and
// pay nothing.
type Gridworld struct {
	Rows, Cols     int
	Start          Cell
	Goals          []Cell
	TimeStepReward float64
	GoalReward     float64
	Discount       float64
}

// NewGridworld returns the MDP of a Gridworld
func NewGridworld(g Gridworld) (*Simple, error) {
	if g.Rows <= 0 || g.Cols <= 0 {
		return nil, fmt.Errorf("newGridworld: %w: %d rows, %d cols",
			ErrShapeMismatch, g.Rows, g.Cols)
	}
	if !g.contains(g.Start) {
		return nil, fmt.Errorf("newGridworld: %w: start %v outside grid",
			ErrShapeMismatch, g.Start)
	}

	goal := make(map[int]bool, len(g.Goals))
	for _, c := range g.Goals {
		if !g.contains(c) {
			return nil, fmt.Errorf("newGridworld: %w: goal %v outside grid",
				ErrShapeMismatch, c)
		}
		goal[g.state(c)] = true
	}

	m, err := NewSimple(g.Rows*g.Cols, gridworldActions, g.Discount)
	if err != nil {
		return nil, fmt.Errorf("newGridworld: %w", err)
	}

	for s := 0; s < m.NumStates(); s++ {
		for a := 0; a < gridworldActions; a++ {
			next := g.move(s, a)
			var reward RewardSampler = Constant(g.TimeStepReward)

			switch {
			case goal[s]:
				next = s
				reward = Constant(0)
			case goal[next]:
				reward = Constant(g.GoalReward)
			}

			err := m.SetInfo(s, a, reward, []Transition{{State: next, Weight: 1}})
			if err != nil {
				return nil, fmt.Errorf("newGridworld: %w", err)
			}
		}
	}

	if err := m.SetInitialState(g.state(g.Start)); err != nil {
		return nil, fmt.Errorf("newGridworld: %w", err)
	}
	return m, nil
}

func (g Gridworld) contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

func (g Gridworld) state(c Cell) int {
	return c.Y*g.Cols + c.X
}

// move returns the state reached by taking action in state
func (g Gridworld) move(state, action int) int {
	c := Cell{X: state % g.Cols, Y: state / g.Cols}
	next := c

	switch action {
	case Left:
		next.X--
	case Right:
		next.X++
	case Up:
		next.Y++
	case Down:
		next.Y--
	}

	if !g.contains(next) {
		return state
	}
	return g.state(next)
}
