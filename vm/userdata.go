package vm

import (
	"reflect"
	"sync"
)

// ---------------------------------------------------------------------------
// GoTypeRegistry: maps host Go types to userdata type descriptors
// ---------------------------------------------------------------------------

// GoTypeInfo describes a registered Go type.
type GoTypeInfo struct {
	TypeID uint16
	GoType reflect.Type
	Name   string
}

// GoTypeRegistry maps Go types to userdata type IDs and vice versa.
// Thread-safe for concurrent registration and lookup.
type GoTypeRegistry struct {
	mu     sync.RWMutex
	types  map[uint16]*GoTypeInfo
	byType map[reflect.Type]uint16
	nextID uint16
}

// NewGoTypeRegistry creates an empty type registry.
func NewGoTypeRegistry() *GoTypeRegistry {
	return &GoTypeRegistry{
		types:  make(map[uint16]*GoTypeInfo),
		byType: make(map[reflect.Type]uint16),
		nextID: 1, // 0 means unregistered
	}
}

// Register adds a Go type to the registry and returns its type ID.
// If the type is already registered, returns the existing ID.
func (r *GoTypeRegistry) Register(goType reflect.Type, name string) uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byType[goType]; ok {
		return id
	}

	id := r.nextID
	r.nextID++

	r.types[id] = &GoTypeInfo{
		TypeID: id,
		GoType: goType,
		Name:   name,
	}
	r.byType[goType] = id
	return id
}

// Lookup returns the type info for a given type ID.
func (r *GoTypeRegistry) Lookup(id uint16) *GoTypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[id]
}

// LookupByType returns the type info for a given Go reflect.Type.
func (r *GoTypeRegistry) LookupByType(goType reflect.Type) *GoTypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byType[goType]
	if !ok {
		return nil
	}
	return r.types[id]
}

// Count returns the number of registered types.
func (r *GoTypeRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
