// Package store implements persistence of policy configurations. Each
// policy is saved to its own file named by its short description.
package store

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samuelfneumann/smallmdp/agent"
)

// Extension is the file extension of saved policies
const Extension = ".policy"

// record is the serialized form of a policy. The Config is stored as
// the JSON of its agent.TypedConfig so that it can be decoded into its
// registered concrete type.
type record struct {
	Description string
	Type        agent.Type
	Config      []byte
}

// Filename returns the name of the file which Save saves c to
func Filename(c agent.Config) string {
	return agent.ShortName(c) + Extension
}

// Save saves a policy configuration to dir, overwriting any policy with
// the same description, and returns the path of the saved file
func Save(dir string, c agent.Config) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("save: invalid config %v: %v", c, err)
	}

	config, err := json.Marshal(agent.NewTypedConfig(c))
	if err != nil {
		return "", fmt.Errorf("save: could not marshal config: %v", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save: %v", err)
	}
	path := filepath.Join(dir, Filename(c))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	err = enc.Encode(record{
		Description: c.String(),
		Type:        c.Type(),
		Config:      config,
	})
	if err != nil {
		return "", fmt.Errorf("save: could not encode policy: %v", err)
	}

	return path, file.Close()
}

// Load loads a policy configuration saved with Save
func Load(path string) (agent.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	var rec record
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("load: could not decode %v: %v", path, err)
	}

	c, err := agent.UnmarshalConfig(rec.Config)
	if err != nil {
		return nil, fmt.Errorf("load: %v: %v", path, err)
	}
	if c.Type() != rec.Type {
		return nil, fmt.Errorf("load: %v: stored type %v does not match "+
			"config type %v", path, rec.Type, c.Type())
	}

	return c, nil
}

// LoadDir loads all policy configurations saved in files with extension
// ext in dir, sorted by file name
func LoadDir(dir, ext string) ([]agent.Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loadDir: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ext {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	configs := make([]agent.Config, 0, len(names))
	for _, name := range names {
		c, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loadDir: %v", err)
		}
		configs = append(configs, c)
	}
	return configs, nil
}
