package bridge

import "github.com/chazu/selene/vm"

// Pop reads the top-of-stack value into T, then removes exactly one slot.
// Removal happens even if the caller discards the result, and exactly
// once regardless of T's category, Dynamic and composites included.
func Pop[T any](s *vm.State) T {
	return PopWith[T](s, DefaultMismatch)
}

// PopWith is Pop with a substituted mismatch handler. If the read raises
// through the VM's error channel the removal does not run; the stack is
// then in whatever state the unwind left it (see ProtectedCall).
func PopWith[T any](s *vm.State, onMismatch Handler) T {
	v := GetWith[T](s, -1, onMismatch)
	s.PopN(1)
	return v
}
