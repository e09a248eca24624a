package vm

import "fmt"

// ---------------------------------------------------------------------------
// Error raising (uses Go panic/recover as the VM's unwind channel)
// ---------------------------------------------------------------------------

// RuntimeError is the error raised through the VM's unwind channel by
// RaiseError and recovered by ProtectedCall. Host code never sees the
// panic directly; it is an internal transport.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// RaiseError raises a runtime error through the VM's unwind channel.
// It never returns. The stack is left untouched by the raise itself;
// ProtectedCall restores the depth it captured on entry.
func (s *State) RaiseError(format string, args ...interface{}) {
	panic(&RuntimeError{Message: fmt.Sprintf(format, args...)})
}

// ProtectedCall runs fn, converting a raised RuntimeError into an error
// return. On error the stack is truncated back to its depth at the time
// of the call; callers must not assume any slots pushed by fn survive.
// Panics that are not RuntimeErrors propagate unchanged.
func (s *State) ProtectedCall(fn func()) (err error) {
	top := s.Top()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		re, ok := r.(*RuntimeError)
		if !ok {
			panic(r)
		}
		if s.Top() > top {
			s.SetTop(top)
		}
		err = re
	}()
	fn()
	return nil
}
