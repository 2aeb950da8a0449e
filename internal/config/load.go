package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads, decodes and validates a topology file.
// Every error wraps ErrConfigLoad.
func LoadFile(path string) (*Topology, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrConfigLoad, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates topology YAML.
func Parse(data []byte) (*Topology, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal yaml: %w", ErrConfigLoad, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: topology is empty", ErrConfigLoad)
	}

	var topo Topology
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &topo,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode topology: %w", ErrConfigLoad, err)
	}

	if err := topo.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	return &topo, nil
}

// Load is LoadFile for callers that must not stop at load time. A failure
// is logged and an unloaded topology is returned; every derivation on it
// returns ErrNotLoaded.
func Load(path string, log logr.Logger) *Topology {
	topo, err := LoadFile(path)
	if err != nil {
		log.Error(err, "failed to load topology", "path", path)
		return &Topology{loadErr: err}
	}
	return topo
}

// Loaded reports whether the topology is usable.
func (t *Topology) Loaded() bool {
	return t != nil && t.loadErr == nil
}

func (t *Topology) check() error {
	if t == nil {
		return ErrNotLoaded
	}
	if t.loadErr != nil {
		return fmt.Errorf("%w: %w", ErrNotLoaded, t.loadErr)
	}
	return nil
}

// Marshal encodes the topology as YAML.
func (t *Topology) Marshal() ([]byte, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("failed to marshal topology: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal topology: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveFile writes the topology to path.
func (t *Topology) SaveFile(path string) error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
