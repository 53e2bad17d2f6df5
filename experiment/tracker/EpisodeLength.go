package tracker

import (
	"fmt"

	ts "github.com/samuelfneumann/smallmdp/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes, together with
// how each episode ended.
//
// An episode must finish for its length to be saved.
type EpisodeLength struct {
	episodeLengths []int
	endTypes       []ts.EndType
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which saves its
// data to filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode
func (e *EpisodeLength) Track(t ts.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
		e.endTypes = append(e.endTypes, t.EndType())
	}
}

// Lengths returns the lengths of all finished episodes
func (e *EpisodeLength) Lengths() []int {
	return append([]int(nil), e.episodeLengths...)
}

// EndTypes returns how each finished episode ended
func (e *EpisodeLength) EndTypes() []ts.EndType {
	return append([]ts.EndType(nil), e.endTypes...)
}

// Save saves the episode lengths to disk
func (e *EpisodeLength) Save() error {
	if err := SaveData(e.filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}
