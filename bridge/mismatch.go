package bridge

import "github.com/chazu/selene/vm"

// Handler is the pluggable strategy invoked when a read's actual runtime
// category disagrees with the category the requested host type demands.
//
// The default strategy raises through the VM's unwind channel and never
// returns. A substituted handler (tests commonly install one to assert on
// the diagnostic) may return control; the read then yields the zero value
// of the requested type with the stack depth unchanged. A handler must
// not pop or push slots it does not restore before returning or raising.
type Handler func(s *vm.State, actual, expected Kind)

// DefaultMismatch is the default Handler. It formats a diagnostic naming
// both categories and raises it through the VM's error channel without
// touching the stack first.
func DefaultMismatch(s *vm.State, actual, expected Kind) {
	s.RaiseError("%s expected, got %s", expected, actual)
}
