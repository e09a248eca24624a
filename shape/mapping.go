package shape

import (
	"reflect"

	"github.com/chazu/selene/vm"
)

// mappingMarshaler converts Go maps to and from VM tables. Key types
// follow the same classification as any other value; in practice string
// and integer keys are the useful ones.
type mappingMarshaler struct{}

func (mappingMarshaler) Push(s *vm.State, rv reflect.Value) {
	tv, tbl := s.Registry().NewTable()
	iter := rv.MapRange()
	for iter.Next() {
		k := pushAndTake(s, iter.Key())
		v := pushAndTake(s, iter.Value())
		tbl.Set(s.Registry(), k, v)
	}
	s.PushValue(tv)
}

func (mappingMarshaler) Get(s *vm.State, idx int, t reflect.Type) reflect.Value {
	tbl := s.Registry().Table(s.At(idx))
	if tbl == nil {
		s.RaiseError("mapping: table handle is stale")
	}

	out := reflect.MakeMapWithSize(t, tbl.Size())
	tbl.ForEach(func(key, value vm.Value) bool {
		gk := getFromValue(s, key, t.Key())
		gv := getFromValue(s, value, t.Elem())
		out.SetMapIndex(gk, gv)
		return true
	})
	return out
}
