package adjustment

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownType is returned when an adjustment references an unregistered type.
var ErrUnknownType = errors.New("adjustment: unknown type")

// TypeDefinition describes a registered adjustment type. Weight controls
// display ordering: lower weights sort first.
type TypeDefinition struct {
	ID     string
	Label  string
	Weight int
}

// Registry holds the adjustment types accepted by the engine. Types are
// registered during wiring; lookups afterwards are read-only.
type Registry struct {
	mu    sync.RWMutex
	types map[string]TypeDefinition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: map[string]TypeDefinition{}}
}

// DefaultRegistry returns a registry seeded with the built-in adjustment
// types. Promotions sort before taxes so discounts always precede taxes in a
// total breakdown; fees and custom charges come last.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range []TypeDefinition{
		{ID: "promotion", Label: "Promotion", Weight: -10},
		{ID: "shipping", Label: "Shipping", Weight: -5},
		{ID: "tax", Label: "Tax", Weight: 0},
		{ID: "fee", Label: "Fee", Weight: 10},
		{ID: "custom", Label: "Custom", Weight: 20},
	} {
		_ = r.Register(def)
	}
	return r
}

// Register adds a type definition. Registering an existing ID replaces it.
func (r *Registry) Register(def TypeDefinition) error {
	id := strings.TrimSpace(def.ID)
	if id == "" {
		return errors.New("adjustment: type id is required")
	}
	def.ID = id
	if strings.TrimSpace(def.Label) == "" {
		def.Label = id
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.types == nil {
		r.types = map[string]TypeDefinition{}
	}
	r.types[id] = def
	return nil
}

// Has reports whether the type id is registered.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[id]
	return ok
}

// Weight returns the sort weight for the type id, or an error when unknown.
func (r *Registry) Weight(id string) (int, error) {
	if r == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.types[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	return def.Weight, nil
}

// Definition returns the full type definition for the id.
func (r *Registry) Definition(id string) (TypeDefinition, error) {
	if r == nil {
		return TypeDefinition{}, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.types[id]
	if !ok {
		return TypeDefinition{}, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	return def, nil
}
