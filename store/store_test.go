package store

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/agent/tabular/modelbased"
	"github.com/samuelfneumann/smallmdp/agent/tabular/qlearning"
	"github.com/samuelfneumann/smallmdp/iterfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(dir, modelbased.RMaxConfig{M: 5})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "RMax_m=5.policy"), path)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, modelbased.RMaxConfig{M: 5}, c)

	_, err = Save(dir, modelbased.RMaxConfig{M: 0})
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	eps, err := iterfn.NewInverseLinear(0.5, 100)
	require.NoError(t, err)
	q := qlearning.Config{DecayExponent: 0.75, Epsilon: eps}

	for _, c := range []agent.Config{
		modelbased.RMaxConfig{M: 3},
		q,
		modelbased.MBIEEBConfig{Beta: 0.5},
	} {
		_, err := Save(dir, c)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("ignored"), 0o644))

	configs, err := LoadDir(dir, Extension)
	require.NoError(t, err)
	require.Len(t, configs, 3)

	assert.Equal(t, modelbased.MBIEEBConfig{Beta: 0.5}, configs[0])
	assert.Equal(t, q.String(), configs[1].String())
	assert.Equal(t, agent.EGreedyQLearning, configs[1].Type())
	assert.Equal(t, modelbased.RMaxConfig{M: 3}, configs[2])

	_, err = LoadDir(filepath.Join(dir, "missing"), Extension)
	assert.Error(t, err)
}

func TestLoadUnknownType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unknown.policy")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(file).Encode(record{
		Description: "Mystery",
		Type:        "Mystery-Tabular",
		Config:      []byte(`{"Type":"Mystery-Tabular","Config":{}}`),
	}))
	require.NoError(t, file.Close())

	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mystery-Tabular")
}
