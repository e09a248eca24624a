package bridge

import (
	"reflect"

	"github.com/chazu/selene/vm"
)

// Get reads the value at a stack position into the host type T, checking
// first that the slot's runtime category matches T's category. Mismatches
// go to the default handler, which raises through the VM's error channel.
// The stack depth is unchanged on every exit path.
func Get[T any](s *vm.State, idx int) T {
	return GetWith[T](s, idx, DefaultMismatch)
}

// GetWith is Get with a substituted mismatch handler. If the handler
// returns control, GetWith returns the zero value of T.
func GetWith[T any](s *vm.State, idx int, onMismatch Handler) T {
	return getReflect(s, idx, typeFor[T](), onMismatch).Interface().(T)
}

// GetReflect is the reflect-level get engine backing Get, using the
// default mismatch handler. Marshalers use it to recurse into composite
// elements.
func GetReflect(s *vm.State, idx int, t reflect.Type) reflect.Value {
	return getReflect(s, idx, t, DefaultMismatch)
}

func getReflect(s *vm.State, idx int, t reflect.Type, onMismatch Handler) reflect.Value {
	defer depthGuard(s)()

	expected := KindOfType(t)

	// Dynamic skips the category check entirely: the wrapper records the
	// value as-is.
	if expected == KindDynamic {
		return reflect.ValueOf(RefAt(s, idx))
	}

	actual := KindOf(s.TypeAt(idx))
	if actual != expected {
		onMismatch(s, actual, expected)
		// A handler that returns control yields the zero value.
		return reflect.Zero(t)
	}

	switch expected {
	case KindNil:
		return reflect.Zero(t)

	case KindBoolean:
		out := reflect.New(t).Elem()
		out.SetBool(s.At(idx).Bool())
		return out

	case KindNumber:
		return extractNumber(s.At(idx), t)

	case KindString:
		content, _ := s.Registry().StringContent(s.At(idx))
		out := reflect.New(t).Elem()
		if t.Kind() == reflect.Slice {
			// Buffer form: a fresh copy owned by the caller.
			out.SetBytes([]byte(content))
		} else {
			// String form: shares the registry's immutable backing.
			out.SetString(content)
		}
		return out

	case KindTable:
		return tableMarshalerFor(t).Get(s, idx, t)

	case KindFunction:
		return require(callableMarshaler, "callable").Get(s, idx, t)

	case KindUserdata:
		return require(userdataMarshaler, "userdata").Get(s, idx, t)
	}

	panic("bridge: unreachable category in get")
}

// extractNumber converts the on-stack numeric subtype to the host
// representation t. Float-to-integer conversion truncates toward zero;
// values outside t's range wrap per Go's conversion rules. Callers
// needing checked narrowing should read into int64/float64 and convert
// themselves.
func extractNumber(v vm.Value, t reflect.Type) reflect.Value {
	var i int64
	var f float64
	if v.IsSmallInt() {
		i = v.SmallInt()
		f = float64(i)
	} else {
		f = v.Float64()
		i = int64(f)
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		out.SetUint(uint64(i))
	default:
		out.SetFloat(f)
	}
	return out
}
