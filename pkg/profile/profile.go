// Package profile loads render profiles from YAML files.
package profile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a reusable set of render settings. Zero values mean "not
// set" and defer to flags or defaults.
type Profile struct {
	SampleRate int     `yaml:"sample_rate"`
	Duration   float64 `yaml:"duration"`
	Workers    int     `yaml:"workers"`
	ChunkSize  int     `yaml:"chunk_size"`
	Realtime   bool    `yaml:"realtime"`
	MaxDepth   int     `yaml:"max_depth"`
	Output     string  `yaml:"output"`
}

// Parse decodes a profile, rejecting unknown fields.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if p.SampleRate < 0 {
		return nil, fmt.Errorf("invalid profile: sample_rate must be positive")
	}
	if p.Duration < 0 {
		return nil, fmt.Errorf("invalid profile: duration must not be negative")
	}
	return &p, nil
}

// LoadFile reads and parses a profile from disk.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read profile %s: %w", path, err)
	}
	return Parse(data)
}
