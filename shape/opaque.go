package shape

import (
	"reflect"

	"github.com/chazu/selene/vm"
)

// userdataMarshaler moves opaque host objects (pointers to structs) on and
// off the stack as userdata handles. Types register through the state's
// GoTypeRegistry; unregistered types auto-register under their Go name.
type userdataMarshaler struct{}

func (userdataMarshaler) Push(s *vm.State, rv reflect.Value) {
	t := rv.Type()
	info := s.Types().LookupByType(t)
	var id uint16
	if info != nil {
		id = info.TypeID
	} else {
		id = s.Types().Register(t, t.Elem().Name())
	}
	s.PushValue(s.Registry().NewUserdata(id, rv.Interface()))
}

func (userdataMarshaler) Get(s *vm.State, idx int, t reflect.Type) reflect.Value {
	ud := s.Registry().Userdata(s.At(idx))
	if ud == nil {
		s.RaiseError("userdata: handle is stale")
	}
	rv := reflect.ValueOf(ud.Value)
	if !rv.Type().AssignableTo(t) {
		want := "unregistered type"
		if info := s.Types().Lookup(ud.TypeID); info != nil {
			want = info.Name
		}
		s.RaiseError("userdata holds %s, not %s", want, t)
	}
	return rv
}
