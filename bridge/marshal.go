package bridge

import (
	"fmt"
	"reflect"

	"github.com/chazu/selene/vm"
)

// Marshaler converts composite or opaque host values to and from the VM
// stack. The bridge delegates to a registered Marshaler whenever a
// classified type is table-, function-, or userdata-shaped.
//
// Contract: Push must grow the stack by exactly one slot holding a value
// of the marshaler's category; Get must leave the depth unchanged and
// return a host value assignable to t. Intermediate pushes during
// recursion are fine as long as the boundary holds.
type Marshaler interface {
	Push(s *vm.State, v reflect.Value)
	Get(s *vm.State, idx int, t reflect.Type) reflect.Value
}

// The five marshaler seams. The shape package installs defaults for all
// of them via its init; embedders may substitute their own.
var (
	seqMarshaler      Marshaler // slices and arrays ↔ table
	mappingMarshaler  Marshaler // maps ↔ table
	recordMarshaler   Marshaler // structs ↔ table
	callableMarshaler Marshaler // funcs ↔ function
	userdataMarshaler Marshaler // pointers to structs ↔ userdata
)

// RegisterSeqMarshaler installs the sequence (slice/array) marshaler.
func RegisterSeqMarshaler(m Marshaler) { seqMarshaler = m }

// RegisterMappingMarshaler installs the mapping (map) marshaler.
func RegisterMappingMarshaler(m Marshaler) { mappingMarshaler = m }

// RegisterRecordMarshaler installs the record (struct) marshaler.
func RegisterRecordMarshaler(m Marshaler) { recordMarshaler = m }

// RegisterCallableMarshaler installs the callable (func) marshaler.
func RegisterCallableMarshaler(m Marshaler) { callableMarshaler = m }

// RegisterUserdataMarshaler installs the userdata (opaque object) marshaler.
func RegisterUserdataMarshaler(m Marshaler) { userdataMarshaler = m }

// tableMarshalerFor selects the table-shaped marshaler for t.
func tableMarshalerFor(t reflect.Type) Marshaler {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return require(seqMarshaler, "sequence")
	case reflect.Map:
		return require(mappingMarshaler, "mapping")
	case reflect.Struct:
		return require(recordMarshaler, "record")
	default:
		panic(fmt.Sprintf("bridge: %s classified as table but has no table shape", t))
	}
}

func require(m Marshaler, what string) Marshaler {
	if m == nil {
		panic(fmt.Sprintf("bridge: no %s marshaler registered (import github.com/chazu/selene/shape)", what))
	}
	return m
}
