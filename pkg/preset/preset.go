// Package preset stores parameter values by key in YAML files.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/r-cha/drumsynth/pkg/framework/param"
)

// Preset is a named set of plain parameter values
type Preset struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

// FromRegistry captures the current value of every keyed parameter
func FromRegistry(name string, reg *param.Registry) *Preset {
	p := &Preset{Name: name, Params: make(map[string]float64)}
	for _, prm := range reg.All() {
		if prm.Key == "" {
			continue
		}
		p.Params[prm.Key] = prm.GetPlainValue()
	}
	return p
}

// Parse decodes a YAML preset
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	if p.Params == nil {
		p.Params = make(map[string]float64)
	}
	return &p, nil
}

// Load reads a preset file. A missing name defaults to the file name.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return p, nil
}

// Marshal encodes the preset as YAML with sorted keys
func (p *Preset) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode preset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the preset, creating parent directories
func (p *Preset) Save(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preset dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Apply sets every listed parameter. Values are clamped to each parameter's
// range. Known keys are applied even when some keys are unknown; the
// returned error lists the unknown ones.
func (p *Preset) Apply(reg *param.Registry) error {
	var errs []error
	for key, value := range p.Params {
		prm, err := reg.GetByKey(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", p.Name, err))
			continue
		}
		prm.SetPlainValue(value)
	}
	return errors.Join(errs...)
}
