package bridge

import "github.com/chazu/selene/vm"

// Ref is the dynamic wrapper: a host-side handle to whatever value
// occupied a stack position when the Ref was taken, without committing to
// a category. Reading a Ref performs no category check; pushing a Ref
// re-pushes the captured value verbatim.
//
// The zero Ref is valid and pushes nil.
type Ref struct {
	value vm.Value
	valid bool
}

// RefAt captures the value at the given stack position. The stack is not
// modified. Raises a runtime error for positions outside the stack.
func RefAt(s *vm.State, idx int) Ref {
	return Ref{value: s.At(idx), valid: true}
}

// RefOf wraps an already-extracted VM value.
func RefOf(v vm.Value) Ref {
	return Ref{value: v, valid: true}
}

// Value returns the captured VM value.
func (r Ref) Value() vm.Value {
	if !r.valid {
		return vm.Nil
	}
	return r.value
}

// Kind reports the runtime category of the captured value.
func (r Ref) Kind() Kind {
	return KindOf(r.Value().Type())
}

// IsNil reports whether the captured value is nil.
func (r Ref) IsNil() bool {
	return r.Value() == vm.Nil
}
