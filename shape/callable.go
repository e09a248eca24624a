package shape

import (
	"reflect"
	"runtime"

	"github.com/chazu/selene/bridge"
	"github.com/chazu/selene/vm"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// callableMarshaler converts Go funcs to VM functions and VM functions to
// callable Go funcs. A trailing error result maps onto the VM's error
// channel in both directions. Variadic signatures are not supported.
type callableMarshaler struct{}

func (callableMarshaler) Push(s *vm.State, rv reflect.Value) {
	ft := rv.Type()
	if ft.IsVariadic() {
		panic("shape: variadic functions cannot be pushed")
	}

	numIn := ft.NumIn()
	numOut := ft.NumOut()
	hasErr := numOut > 0 && ft.Out(numOut-1) == errorType

	name := runtime.FuncForPC(rv.Pointer()).Name()
	fn := func(s *vm.State) int {
		if s.Top() < numIn {
			s.RaiseError("%s: expected %d arguments, got %d", name, numIn, s.Top())
		}
		args := make([]reflect.Value, numIn)
		base := s.Top() - numIn
		for i := range args {
			args[i] = bridge.GetReflect(s, base+1+i, ft.In(i))
		}

		outs := rv.Call(args)
		if hasErr {
			if err, _ := outs[numOut-1].Interface().(error); err != nil {
				s.RaiseError("%s", err)
			}
			outs = outs[:numOut-1]
		}
		for _, out := range outs {
			bridge.PushReflect(s, out)
		}
		return len(outs)
	}

	s.PushValue(s.Registry().NewFunction(name, fn))
}

func (callableMarshaler) Get(s *vm.State, idx int, t reflect.Type) reflect.Value {
	if t.IsVariadic() {
		s.RaiseError("callable: variadic signatures are not supported")
	}
	fv := s.At(idx)
	if s.Registry().Function(fv) == nil {
		s.RaiseError("callable: function handle is stale")
	}

	numOut := t.NumOut()
	hasErr := numOut > 0 && t.Out(numOut-1) == errorType
	nret := numOut
	if hasErr {
		nret--
	}

	return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		call := func() {
			s.PushValue(fv)
			for _, a := range args {
				bridge.PushReflect(s, a)
			}
			s.Call(len(args), nret)
		}

		var callErr error
		if hasErr {
			callErr = s.ProtectedCall(call)
		} else {
			call()
		}

		outs := make([]reflect.Value, numOut)
		if callErr == nil {
			base := s.Top() - nret
			for i := 0; i < nret; i++ {
				outs[i] = bridge.GetReflect(s, base+1+i, t.Out(i))
			}
			s.PopN(nret)
		} else {
			for i := 0; i < nret; i++ {
				outs[i] = reflect.Zero(t.Out(i))
			}
		}

		if hasErr {
			ev := reflect.New(errorType).Elem()
			if callErr != nil {
				ev.Set(reflect.ValueOf(callErr))
			}
			outs[numOut-1] = ev
		}
		return outs
	})
}
