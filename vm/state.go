package vm

// GoFunction is a host function callable from the VM. It receives its
// arguments as the topmost stack slots and returns the number of result
// values it pushed.
type GoFunction func(s *State) int

// MultipleReturns is the nres option for Call that keeps every result the
// callee produced.
const MultipleReturns = -1

// State is one VM instance: the evaluation stack plus the object and type
// registries backing handle values. A State has exactly one logical owner
// at a time; it performs no internal locking around stack operations.
type State struct {
	stack    []Value
	registry *ObjectRegistry
	types    *GoTypeRegistry
	globals  map[string]Value
}

// NewState creates an empty VM state.
func NewState() *State {
	return &State{
		registry: NewObjectRegistry(),
		types:    NewGoTypeRegistry(),
		globals:  make(map[string]Value),
	}
}

// Registry returns the state's object registry.
func (s *State) Registry() *ObjectRegistry {
	return s.registry
}

// Types returns the state's host type registry.
func (s *State) Types() *GoTypeRegistry {
	return s.types
}

// ---------------------------------------------------------------------------
// Stack protocol
// ---------------------------------------------------------------------------

// Top returns the current stack depth. Positions 1..Top are valid.
func (s *State) Top() int {
	return len(s.stack)
}

// AbsIndex converts an index to its absolute 1-based position. Negative
// indexes count from the top (-1 = top). Returns 0 for positions outside
// the current stack.
func (s *State) AbsIndex(idx int) int {
	switch {
	case idx > 0 && idx <= len(s.stack):
		return idx
	case idx < 0 && -idx <= len(s.stack):
		return len(s.stack) + idx + 1
	default:
		return 0
	}
}

// PushValue pushes v onto the stack. Depth increases by exactly one.
func (s *State) PushValue(v Value) {
	s.stack = append(s.stack, v)
}

// At returns the value at the given stack position without changing the
// stack. Raises a runtime error for positions outside the stack.
func (s *State) At(idx int) Value {
	abs := s.AbsIndex(idx)
	if abs == 0 {
		s.RaiseError("invalid stack index %d (depth %d)", idx, len(s.stack))
	}
	return s.stack[abs-1]
}

// TypeAt returns the runtime type tag at the given position, or TypeNone
// for positions outside the stack.
func (s *State) TypeAt(idx int) Type {
	abs := s.AbsIndex(idx)
	if abs == 0 {
		return TypeNone
	}
	return s.stack[abs-1].Type()
}

// PopN removes the top n slots. Panics if n exceeds the current depth.
func (s *State) PopN(n int) {
	if n < 0 || n > len(s.stack) {
		panic("State.PopN: count out of range")
	}
	s.stack = s.stack[:len(s.stack)-n]
}

// SetTop truncates or grows the stack to depth n; new slots are Nil.
func (s *State) SetTop(n int) {
	if n < 0 {
		panic("State.SetTop: negative depth")
	}
	for len(s.stack) < n {
		s.stack = append(s.stack, Nil)
	}
	s.stack = s.stack[:n]
}

// ---------------------------------------------------------------------------
// Globals
// ---------------------------------------------------------------------------

// SetGlobal binds a value to a global name.
func (s *State) SetGlobal(name string, v Value) {
	s.globals[name] = v
}

// Global returns the value bound to a global name, or Nil.
func (s *State) Global(name string) Value {
	v, ok := s.globals[name]
	if !ok {
		return Nil
	}
	return v
}

// GlobalNames returns the names of all bound globals, in no particular order.
func (s *State) GlobalNames() []string {
	names := make([]string, 0, len(s.globals))
	for name := range s.globals {
		names = append(names, name)
	}
	return names
}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

// Call invokes the function value sitting below its nargs arguments on the
// stack. The function and arguments are consumed; exactly nres results
// remain in their place (padded with Nil or truncated as needed). Pass
// MultipleReturns to keep every result.
//
// Raises a runtime error if the value is not a function.
func (s *State) Call(nargs, nres int) {
	if nargs < 0 || nargs+1 > len(s.stack) {
		s.RaiseError("call: %d arguments but stack depth is %d", nargs, len(s.stack))
	}
	base := len(s.stack) - nargs - 1
	fv := s.stack[base]
	fo := s.registry.Function(fv)
	if fo == nil {
		s.RaiseError("attempt to call a %s value", fv.Type())
	}

	nret := fo.Fn(s)
	if nret < 0 || nret > len(s.stack)-base-1 {
		panic("State.Call: function returned invalid result count")
	}

	// Slide results down over the function and its arguments.
	results := s.stack[len(s.stack)-nret:]
	copy(s.stack[base:], results)
	s.stack = s.stack[:base+nret]

	if nres == MultipleReturns {
		return
	}
	s.SetTop(base + nres)
}
