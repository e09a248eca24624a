// Package cbormod serializes VM stack values to and from canonical CBOR,
// so table-shaped data can leave the VM as bytes and come back intact.
package cbormod

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/selene/bridge"
	_ "github.com/chazu/selene/shape"
	"github.com/chazu/selene/vm"
)

// cborEncMode holds CBOR encoding options with canonical mode for
// deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbormod: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Register binds cborEncode and cborDecode globals into a state.
func Register(s *vm.State) {
	setFn(s, "cborEncode", func(r bridge.Ref) ([]byte, error) {
		return Marshal(s, r.Value())
	})
	setFn(s, "cborDecode", func(data []byte) (bridge.Ref, error) {
		v, err := Unmarshal(s, data)
		if err != nil {
			return bridge.Ref{}, err
		}
		return bridge.RefOf(v), nil
	})
}

func setFn(s *vm.State, name string, fn interface{}) {
	bridge.PushReflect(s, reflect.ValueOf(fn))
	v := s.At(-1)
	s.PopN(1)
	s.SetGlobal(name, v)
}

// Encode serializes the value at a stack position to canonical CBOR.
// The stack is unchanged.
func Encode(s *vm.State, idx int) ([]byte, error) {
	return Marshal(s, s.At(idx))
}

// Decode deserializes CBOR bytes and pushes the resulting value.
// Stack depth grows by exactly one on success.
func Decode(s *vm.State, data []byte) error {
	v, err := Unmarshal(s, data)
	if err != nil {
		return err
	}
	s.PushValue(v)
	return nil
}

// Marshal serializes a VM value to canonical CBOR bytes.
func Marshal(s *vm.State, v vm.Value) ([]byte, error) {
	g, err := valueToGo(s, v)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(g)
}

// Unmarshal deserializes CBOR bytes into a VM value, allocating strings
// and tables in the state's registry as needed.
func Unmarshal(s *vm.State, data []byte) (vm.Value, error) {
	var g interface{}
	if err := cbor.Unmarshal(data, &g); err != nil {
		return vm.Nil, fmt.Errorf("cbormod: unmarshal: %w", err)
	}
	return goToValue(s, g)
}

// valueToGo converts a VM value to a CBOR-encodable Go shape. Tables with
// consecutive integer keys from 1 become arrays; other tables become maps.
// Functions and userdata are not encodable.
func valueToGo(s *vm.State, v vm.Value) (interface{}, error) {
	switch v.Type() {
	case vm.TypeNil:
		return nil, nil
	case vm.TypeBoolean:
		return v.Bool(), nil
	case vm.TypeNumber:
		if v.IsSmallInt() {
			return v.SmallInt(), nil
		}
		return v.Float64(), nil
	case vm.TypeString:
		content, _ := s.Registry().StringContent(v)
		return content, nil
	case vm.TypeTable:
		return tableToGo(s, v)
	default:
		return nil, fmt.Errorf("cbormod: %s values are not encodable", v.Type())
	}
}

func tableToGo(s *vm.State, v vm.Value) (interface{}, error) {
	tbl := s.Registry().Table(v)
	if tbl == nil {
		return nil, fmt.Errorf("cbormod: stale table handle")
	}

	n := tbl.Len(s.Registry())
	if n == tbl.Size() {
		// Pure sequence.
		arr := make([]interface{}, n)
		for i := 0; i < n; i++ {
			g, err := valueToGo(s, tbl.Get(s.Registry(), vm.FromSmallInt(int64(i+1))))
			if err != nil {
				return nil, err
			}
			arr[i] = g
		}
		return arr, nil
	}

	out := make(map[interface{}]interface{}, tbl.Size())
	var convErr error
	tbl.ForEach(func(key, value vm.Value) bool {
		gk, err := valueToGo(s, key)
		if err != nil {
			convErr = err
			return false
		}
		gv, err := valueToGo(s, value)
		if err != nil {
			convErr = err
			return false
		}
		out[gk] = gv
		return true
	})
	if convErr != nil {
		return nil, convErr
	}
	return out, nil
}

// goToValue converts a decoded CBOR Go shape to a VM value.
func goToValue(s *vm.State, g interface{}) (vm.Value, error) {
	switch x := g.(type) {
	case nil:
		return vm.Nil, nil
	case bool:
		return vm.FromBool(x), nil
	case int64:
		if v, ok := vm.TryFromSmallInt(x); ok {
			return v, nil
		}
		return vm.FromFloat64(float64(x)), nil
	case uint64:
		if x <= uint64(vm.MaxSmallInt) {
			return vm.FromSmallInt(int64(x)), nil
		}
		return vm.FromFloat64(float64(x)), nil
	case float64:
		return vm.FromFloat64(x), nil
	case string:
		return s.Registry().NewString(x), nil
	case []byte:
		return s.Registry().NewString(string(x)), nil
	case []interface{}:
		tv, tbl := s.Registry().NewTable()
		for i, elem := range x {
			ev, err := goToValue(s, elem)
			if err != nil {
				return vm.Nil, err
			}
			tbl.Set(s.Registry(), vm.FromSmallInt(int64(i+1)), ev)
		}
		return tv, nil
	case map[interface{}]interface{}:
		tv, tbl := s.Registry().NewTable()
		for k, val := range x {
			kv, err := goToValue(s, k)
			if err != nil {
				return vm.Nil, err
			}
			vv, err := goToValue(s, val)
			if err != nil {
				return vm.Nil, err
			}
			tbl.Set(s.Registry(), kv, vv)
		}
		return tv, nil
	case map[string]interface{}:
		tv, tbl := s.Registry().NewTable()
		for k, val := range x {
			vv, err := goToValue(s, val)
			if err != nil {
				return vm.Nil, err
			}
			tbl.Set(s.Registry(), s.Registry().NewString(k), vv)
		}
		return tv, nil
	default:
		return vm.Nil, fmt.Errorf("cbormod: cannot revive %T", g)
	}
}
