package bridge

import (
	"testing"

	"github.com/chazu/selene/vm"
)

func TestRefPassthrough(t *testing.T) {
	s := vm.NewState()
	Push(s, "hello")

	r := Get[Ref](s, -1)
	if s.Top() != 1 {
		t.Fatalf("taking a ref changed depth to %d", s.Top())
	}

	// Re-pushing the wrapper re-pushes the referenced value.
	Push(s, r)
	if s.Top() != 2 {
		t.Fatalf("pushing a ref must add exactly one slot, depth %d", s.Top())
	}
	if s.TypeAt(-1) != vm.TypeString {
		t.Errorf("re-pushed value is %s, want string", s.TypeAt(-1))
	}
	if got := Pop[string](s); got != "hello" {
		t.Errorf("re-pushed value = %q", got)
	}
}

func TestRefOverNumber(t *testing.T) {
	s := vm.NewState()
	Push(s, 99)

	r := Pop[Ref](s)
	if r.Kind() != KindNumber {
		t.Errorf("kind = %s, want number", r.Kind())
	}
	Push(s, r)
	if got := Pop[int](s); got != 99 {
		t.Errorf("round trip through ref: %d", got)
	}
}

func TestZeroRefPushesNil(t *testing.T) {
	s := vm.NewState()
	var r Ref
	if !r.IsNil() || r.Kind() != KindNil {
		t.Error("zero Ref should read as nil")
	}
	Push(s, r)
	if s.TypeAt(-1) != vm.TypeNil {
		t.Errorf("zero ref pushed as %s", s.TypeAt(-1))
	}
}

func TestRefOfValue(t *testing.T) {
	s := vm.NewState()
	r := RefOf(vm.FromSmallInt(5))
	Push(s, r)
	if got := Pop[int](s); got != 5 {
		t.Errorf("RefOf round trip: %d", got)
	}
}

func TestRefAtOutsideStackRaises(t *testing.T) {
	s := vm.NewState()
	err := s.ProtectedCall(func() { RefAt(s, 3) })
	if err == nil {
		t.Error("expected error for out-of-range position")
	}
}
