// Package shape provides the default marshalers for composite and opaque
// host types: sequences (slices/arrays), mappings (maps), records
// (structs), callables (funcs), and userdata (pointers to structs).
// Importing the package installs all five into the bridge:
//
//	import _ "github.com/chazu/selene/shape"
package shape

import (
	"reflect"

	"github.com/chazu/selene/bridge"
	"github.com/chazu/selene/vm"
)

func init() {
	bridge.RegisterSeqMarshaler(seqMarshaler{})
	bridge.RegisterMappingMarshaler(mappingMarshaler{})
	bridge.RegisterRecordMarshaler(recordMarshaler{})
	bridge.RegisterCallableMarshaler(callableMarshaler{})
	bridge.RegisterUserdataMarshaler(userdataMarshaler{})
}

// pushAndTake converts a host value to a VM value by pushing it and
// popping it back off. The intermediate push is invisible at the
// marshaling boundary.
func pushAndTake(s *vm.State, rv reflect.Value) vm.Value {
	bridge.PushReflect(s, rv)
	v := s.At(-1)
	s.PopN(1)
	return v
}

// getFromValue converts a VM value to a host value of type t by pushing
// it and reading it back. If the read raises, the unwind carries the
// temporary slot with it; protected callers truncate to their entry depth.
func getFromValue(s *vm.State, v vm.Value, t reflect.Type) reflect.Value {
	s.PushValue(v)
	out := bridge.GetReflect(s, -1, t)
	s.PopN(1)
	return out
}
