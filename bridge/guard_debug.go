//go:build bridgedebug

package bridge

import (
	"fmt"

	"github.com/chazu/selene/vm"
)

// depthGuard records the stack depth on entry to the get engine and
// asserts it is unchanged on every exit path, ordinary return and unwind
// alike. Enabled with -tags bridgedebug.
func depthGuard(s *vm.State) func() {
	depth := s.Top()
	return func() {
		if got := s.Top(); got != depth {
			panic(fmt.Sprintf("bridge: get changed stack depth from %d to %d", depth, got))
		}
	}
}
