// Package state saves and restores plugin parameter state.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/r-cha/drumsynth/pkg/framework/param"
)

// Magic prefixes every saved state blob.
const Magic = "DRUMSY"

// Version is the state format version written by Save.
const Version uint32 = 1

var (
	// ErrInvalidFormat is returned when the blob does not start with Magic.
	ErrInvalidFormat = errors.New("invalid state format")
	// ErrVersionTooNew is returned for blobs written by a newer format.
	ErrVersionTooNew = errors.New("state version too new")
)

// Manager handles plugin state saving and loading
type Manager struct {
	version    uint32
	registry   *param.Registry
	saveCustom SaveFunc
	loadCustom LoadFunc
}

// SaveFunc writes additional state after the parameters
type SaveFunc func(w io.Writer) error

// LoadFunc reads what the matching SaveFunc wrote
type LoadFunc func(r io.Reader) error

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  Version,
		registry: registry,
	}
}

// SetCustomState sets the functions for saving and loading custom state
func (m *Manager) SetCustomState(save SaveFunc, load LoadFunc) {
	m.saveCustom = save
	m.loadCustom = load
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	params := m.registry.All()
	header := struct {
		Version uint32
		Count   int32
	}{m.version, int32(len(params))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range params {
		entry := struct {
			ID    uint32
			Value float64
		}{p.ID, p.GetValue()}
		if err := binary.Write(w, binary.LittleEndian, entry); err != nil {
			return fmt.Errorf("write parameter %d: %w", p.ID, err)
		}
	}

	if m.saveCustom == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return err
	}
	if err := m.saveCustom(w); err != nil {
		return fmt.Errorf("write custom state: %w", err)
	}
	return nil
}

// Load reads the plugin state from a reader. Unknown parameter IDs are skipped.
// A truncated or corrupt parameter section leaves the registry untouched.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if string(header) != Magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if version > m.version {
		return fmt.Errorf("%w: %d > %d", ErrVersionTooNew, version, m.version)
	}

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read parameter count: %w", err)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative parameter count", ErrInvalidFormat)
	}

	type entry struct {
		ID    uint32
		Value float64
	}
	entries := make([]entry, 0, min(int(count), int(m.registry.Count())))
	for i := int32(0); i < count; i++ {
		var e entry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return fmt.Errorf("read parameter %d: %w", i, err)
		}
		entries = append(entries, e)
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return fmt.Errorf("read custom marker: %w", err)
	}

	// Nothing is applied until the parameter section decoded cleanly.
	for _, e := range entries {
		if p := m.registry.Get(e.ID); p != nil {
			p.SetValue(e.Value)
		}
	}

	if hasCustom != 0 && m.loadCustom != nil {
		if err := m.loadCustom(r); err != nil {
			return fmt.Errorf("read custom state: %w", err)
		}
	}

	return nil
}
