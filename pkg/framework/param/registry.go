package param

import (
	"fmt"
	"sync"
)

// Unit groups parameters into a named section (VST3 unit)
type Unit struct {
	ID   int32
	Name string
}

// RootUnitID is the implicit unit every parameter belongs to by default
const RootUnitID int32 = 0

// Registry manages plugin parameters
type Registry struct {
	params map[uint32]*Parameter
	keys   map[string]uint32
	order  []uint32 // Maintain order for indexed access
	units  []Unit
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		keys:   make(map[string]uint32),
		order:  make([]uint32, 0),
		units:  []Unit{{ID: RootUnitID, Name: "Root"}},
	}
}

// Add registers new parameters. IDs and keys must be unique.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			return fmt.Errorf("duplicate parameter id %d", p.ID)
		}
		if p.Key != "" {
			if _, exists := r.keys[p.Key]; exists {
				return fmt.Errorf("duplicate parameter key %q", p.Key)
			}
			r.keys[p.Key] = p.ID
		}
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	return nil
}

// AddUnit registers a parameter group
func (r *Registry) AddUnit(id int32, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.units {
		if r.units[i].ID == id {
			r.units[i].Name = name
			return
		}
	}
	r.units = append(r.units, Unit{ID: id, Name: name})
}

// Units returns the registered units in insertion order
func (r *Registry) Units() []Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Unit, len(r.units))
	copy(out, r.units)
	return out
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// GetByKey retrieves a parameter by its string key
func (r *Registry) GetByKey(key string) (*Parameter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.keys[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	return r.params[id], nil
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}

	id := r.order[index]
	return r.params[id]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}

	return result
}

// InUnit returns the parameters of one group in registration order
func (r *Registry) InUnit(unitID int32) []*Parameter {
	var out []*Parameter
	for _, p := range r.All() {
		if p.UnitID == unitID {
			out = append(out, p)
		}
	}
	return out
}

// ResetAll restores every parameter to its default
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}
