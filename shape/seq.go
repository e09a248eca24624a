package shape

import (
	"reflect"

	"github.com/chazu/selene/vm"
)

// seqMarshaler converts Go slices and arrays to and from VM tables with
// consecutive integer keys starting at 1.
type seqMarshaler struct{}

func (seqMarshaler) Push(s *vm.State, rv reflect.Value) {
	tv, tbl := s.Registry().NewTable()
	for i := 0; i < rv.Len(); i++ {
		elem := pushAndTake(s, rv.Index(i))
		tbl.Set(s.Registry(), vm.FromSmallInt(int64(i+1)), elem)
	}
	s.PushValue(tv)
}

func (seqMarshaler) Get(s *vm.State, idx int, t reflect.Type) reflect.Value {
	tbl := s.Registry().Table(s.At(idx))
	if tbl == nil {
		s.RaiseError("sequence: table handle is stale")
	}
	n := tbl.Len(s.Registry())

	var out reflect.Value
	switch t.Kind() {
	case reflect.Slice:
		out = reflect.MakeSlice(t, n, n)
	case reflect.Array:
		out = reflect.New(t).Elem()
		if n > t.Len() {
			n = t.Len()
		}
	}

	for i := 0; i < n; i++ {
		ev := tbl.Get(s.Registry(), vm.FromSmallInt(int64(i+1)))
		out.Index(i).Set(getFromValue(s, ev, t.Elem()))
	}
	return out
}
