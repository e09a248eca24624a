package bridge

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	refType  = reflect.TypeOf(Ref{})
	noneType = reflect.TypeOf(None{})

	// kindCache memoizes classification per reflect.Type. Classification
	// is pure, so a stale read can only recompute the same answer.
	kindCache sync.Map // reflect.Type → Kind
)

// KindFor returns the value category of the host type T.
// Equivalent to KindOfType(reflect.TypeOf(...)) but resolved from the
// type parameter alone.
func KindFor[T any]() Kind {
	return KindOfType(typeFor[T]())
}

// typeFor returns the reflect.Type of T without needing a value of T.
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// KindOfType maps a host type to its value category. The mapping is total
// over supported types and resolved in a fixed precedence order; the first
// matching rule wins:
//
//  1. Ref (the dynamic wrapper) → dynamic
//  2. None (the absence marker) → nil
//  3. boolean types → boolean
//  4. integer types → number
//  5. floating-point types → number
//  6. []byte buffers and string types → string
//  7. maps, slices, arrays, and structs → table
//  8. func types → function
//  9. pointers to structs → userdata
//
// The order matters even where Go's kinds look disjoint: Ref and None are
// themselves structs and must resolve before the table rule, and byte
// slices must resolve to string before the generic slice rule.
//
// A type matching no rule is a programming error, not a runtime
// condition: KindOfType panics with a diagnostic naming the type. The
// panic fires deterministically at the first dispatch of the offending
// type, before any stack interaction for that value.
func KindOfType(t reflect.Type) Kind {
	if k, ok := kindCache.Load(t); ok {
		return k.(Kind)
	}
	k := classify(t)
	kindCache.Store(t, k)
	return k
}

func classify(t reflect.Type) Kind {
	switch t {
	case refType:
		return KindDynamic
	case noneType:
		return KindNil
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindNumber
	case reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindString
		}
		return KindTable
	case reflect.Array, reflect.Map, reflect.Struct:
		return KindTable
	case reflect.Func:
		return KindFunction
	case reflect.Ptr:
		if t.Elem().Kind() == reflect.Struct {
			return KindUserdata
		}
	}

	panic(fmt.Sprintf("bridge: Go type %s has no VM value category", t))
}
