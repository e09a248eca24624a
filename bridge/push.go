package bridge

import (
	"reflect"

	"github.com/chazu/selene/vm"
)

// Push converts a host value into a VM stack push. T's category decides
// the on-stack representation; composite and opaque categories delegate
// to the registered marshalers. Stack depth grows by exactly one,
// whatever the category.
func Push[T any](s *vm.State, v T) {
	PushReflect(s, reflect.ValueOf(&v).Elem())
}

// PushReflect is the reflect-level push engine backing Push. Marshalers
// use it to recurse into composite elements.
func PushReflect(s *vm.State, rv reflect.Value) {
	t := rv.Type()
	switch KindOfType(t) {
	case KindDynamic:
		ref := rv.Interface().(Ref)
		s.PushValue(ref.Value())

	case KindNil:
		s.PushValue(vm.Nil)

	case KindBoolean:
		s.PushValue(vm.FromBool(rv.Bool()))

	case KindNumber:
		s.PushValue(numberValue(rv))

	case KindString:
		if t.Kind() == reflect.Slice {
			s.PushValue(s.Registry().NewString(string(rv.Bytes())))
		} else {
			s.PushValue(s.Registry().NewString(rv.String()))
		}

	case KindTable:
		tableMarshalerFor(t).Push(s, rv)

	case KindFunction:
		require(callableMarshaler, "callable").Push(s, rv)

	case KindUserdata:
		require(userdataMarshaler, "userdata").Push(s, rv)
	}
}

// numberValue encodes a numeric host value. Integer values that fit the
// VM's small-int range push as integers; everything else pushes as a
// float. The split is an on-stack subtype only; both report category
// number.
func numberValue(rv reflect.Value) vm.Value {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v, ok := vm.TryFromSmallInt(rv.Int()); ok {
			return v
		}
		return vm.FromFloat64(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= uint64(vm.MaxSmallInt) {
			return vm.FromSmallInt(int64(u))
		}
		return vm.FromFloat64(float64(u))
	default:
		return vm.FromFloat64(rv.Float())
	}
}
