package targets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package targets loads named fetch targets from YAML or JSON files.

// Output formats a target, the config, or the CLI may request.
const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatYAML = "yaml"

	defaultFormat = FormatJSON
)

// Target is a named URL to fetch and the format its body should be rendered in.
type Target struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	URL    string `json:"url" yaml:"url"`
	Format string `json:"format" yaml:"format"`
}

type file struct {
	Targets []Target `json:"targets" yaml:"targets"`
}

// Registry is an immutable, ordered set of targets keyed by id.
type Registry struct {
	targets []Target
	idx     map[string]Target
}

// LoadRegistry reads and validates a targets file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("targets file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	f, err := parseFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(f.Targets)
}

// NewRegistry validates entries and builds a Registry.
func NewRegistry(entries []Target) (*Registry, error) {
	if len(entries) == 0 {
		return nil, errors.New("targets file contains no targets entries")
	}

	reg := &Registry{
		targets: make([]Target, 0, len(entries)),
		idx:     make(map[string]Target, len(entries)),
	}
	for i, t := range entries {
		t = sanitizeTarget(t)
		if err := validateTarget(t); err != nil {
			return nil, fmt.Errorf("target[%d]: %w", i, err)
		}
		if _, exists := reg.idx[t.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", t.ID)
		}
		reg.targets = append(reg.targets, t)
		reg.idx[t.ID] = t
	}
	return reg, nil
}

// All returns a copy of the targets in file order.
func (r *Registry) All() []Target {
	if r == nil || len(r.targets) == 0 {
		return nil
	}
	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// ByID returns the target with the given id, if loaded.
func (r *Registry) ByID(id string) (Target, bool) {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return Target{}, false
	}
	t, ok := r.idx[id]
	return t, ok
}

type unmarshalFn func([]byte, any) error

func parseFile(data []byte, ext string) (file, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	known := false
	for _, d := range decoders {
		if ext == d.ext {
			known = true
			break
		}
	}

	var lastErr error
	for _, d := range decoders {
		if known && ext != d.ext {
			continue
		}
		var f file
		if err := d.fn(data, &f); err != nil {
			lastErr = fmt.Errorf("decode %s targets: %w", d.name, err)
			continue
		}
		return f, nil
	}

	if lastErr != nil {
		return file{}, lastErr
	}
	return file{}, errors.New("targets file format not recognized (expected YAML or JSON)")
}

func sanitizeTarget(t Target) Target {
	t.ID = strings.TrimSpace(t.ID)
	t.Name = strings.TrimSpace(t.Name)
	t.URL = strings.TrimSpace(t.URL)
	t.Format = strings.ToLower(strings.TrimSpace(t.Format))
	if t.Format == "" {
		t.Format = defaultFormat
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	return t
}

func validateTarget(t Target) error {
	if t.ID == "" {
		return errors.New("id is required")
	}
	if t.URL == "" {
		return fmt.Errorf("url is required for target %q", t.ID)
	}
	if !ValidFormat(t.Format) {
		return fmt.Errorf("unsupported format %q for target %q", t.Format, t.ID)
	}
	return nil
}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	switch f {
	case FormatRaw, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}
