package shape

import (
	"reflect"

	"github.com/chazu/selene/vm"
)

// recordMarshaler converts Go structs to and from VM tables keyed by
// field name. Exported fields only; a `vm:"name"` tag renames a field and
// `vm:"-"` skips it.
type recordMarshaler struct{}

// fieldName returns the table key for a struct field, or "" to skip it.
func fieldName(f reflect.StructField) string {
	if f.PkgPath != "" {
		return "" // unexported
	}
	tag := f.Tag.Get("vm")
	switch tag {
	case "":
		return f.Name
	case "-":
		return ""
	default:
		return tag
	}
}

func (recordMarshaler) Push(s *vm.State, rv reflect.Value) {
	t := rv.Type()
	tv, tbl := s.Registry().NewTable()
	for i := 0; i < t.NumField(); i++ {
		name := fieldName(t.Field(i))
		if name == "" {
			continue
		}
		key := s.Registry().NewString(name)
		tbl.Set(s.Registry(), key, pushAndTake(s, rv.Field(i)))
	}
	s.PushValue(tv)
}

func (recordMarshaler) Get(s *vm.State, idx int, t reflect.Type) reflect.Value {
	tbl := s.Registry().Table(s.At(idx))
	if tbl == nil {
		s.RaiseError("record: table handle is stale")
	}

	out := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		name := fieldName(t.Field(i))
		if name == "" {
			continue
		}
		fv := tbl.Get(s.Registry(), s.Registry().NewString(name))
		if fv == vm.Nil {
			continue // absent field keeps its zero value
		}
		out.Field(i).Set(getFromValue(s, fv, t.Field(i).Type))
	}
	return out
}
