// Package tracker implements Trackers, which track data from the
// TimeSteps of rollouts and save it to disk
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/smallmdp/timestep"
)

// Tracker keeps track of rollout data and saves the data after the
// rollouts have finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// SaveData saves data to filename using gob encoding
func SaveData[T any](filename string, data []T) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveData: could not open save file: %v", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("saveData: could not encode data: %v", err)
	}
	return file.Close()
}

// LoadData loads and returns the data saved by a Tracker or SaveData
func LoadData[T any](filename string) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %v",
			err)
	}
	defer file.Close()

	var data []T
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %v", err)
	}
	return data, nil
}
