package vm

import (
	"strings"
	"testing"
)

func TestStackPushAndIndex(t *testing.T) {
	s := NewState()
	if s.Top() != 0 {
		t.Fatal("new state should be empty")
	}

	s.PushValue(FromSmallInt(1))
	s.PushValue(FromSmallInt(2))
	s.PushValue(FromSmallInt(3))

	if s.Top() != 3 {
		t.Fatalf("expected depth 3, got %d", s.Top())
	}
	if s.At(1).SmallInt() != 1 || s.At(3).SmallInt() != 3 {
		t.Error("positive indexing wrong")
	}
	if s.At(-1).SmallInt() != 3 || s.At(-3).SmallInt() != 1 {
		t.Error("negative indexing wrong")
	}
}

func TestAbsIndex(t *testing.T) {
	s := NewState()
	s.PushValue(Nil)
	s.PushValue(Nil)

	cases := []struct{ in, want int }{
		{1, 1}, {2, 2}, {-1, 2}, {-2, 1},
		{0, 0}, {3, 0}, {-3, 0},
	}
	for _, c := range cases {
		if got := s.AbsIndex(c.in); got != c.want {
			t.Errorf("AbsIndex(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTypeAtOutsideStack(t *testing.T) {
	s := NewState()
	if s.TypeAt(1) != TypeNone || s.TypeAt(-1) != TypeNone {
		t.Error("expected TypeNone outside the stack")
	}
}

func TestPopNAndSetTop(t *testing.T) {
	s := NewState()
	for i := 0; i < 5; i++ {
		s.PushValue(FromSmallInt(int64(i)))
	}
	s.PopN(2)
	if s.Top() != 3 {
		t.Fatalf("expected depth 3 after PopN(2), got %d", s.Top())
	}
	s.SetTop(5)
	if s.Top() != 5 || s.At(5) != Nil {
		t.Error("SetTop should grow with Nil")
	}
	s.SetTop(0)
	if s.Top() != 0 {
		t.Error("SetTop(0) should empty the stack")
	}
}

func TestGlobals(t *testing.T) {
	s := NewState()
	if s.Global("missing") != Nil {
		t.Error("missing global should be Nil")
	}
	s.SetGlobal("answer", FromSmallInt(42))
	if s.Global("answer").SmallInt() != 42 {
		t.Error("global round trip failed")
	}
}

func TestCall(t *testing.T) {
	s := NewState()
	add := s.Registry().NewFunction("add", func(s *State) int {
		a := s.At(-2).SmallInt()
		b := s.At(-1).SmallInt()
		s.PushValue(FromSmallInt(a + b))
		return 1
	})

	s.PushValue(add)
	s.PushValue(FromSmallInt(2))
	s.PushValue(FromSmallInt(3))
	s.Call(2, 1)

	if s.Top() != 1 {
		t.Fatalf("expected 1 result, depth is %d", s.Top())
	}
	if got := s.At(-1).SmallInt(); got != 5 {
		t.Errorf("add(2, 3) = %d", got)
	}
}

func TestCallResultAdjustment(t *testing.T) {
	s := NewState()
	two := s.Registry().NewFunction("two", func(s *State) int {
		s.PushValue(FromSmallInt(10))
		s.PushValue(FromSmallInt(20))
		return 2
	})

	// Truncate to one result.
	s.PushValue(two)
	s.Call(0, 1)
	if s.Top() != 1 || s.At(1).SmallInt() != 10 {
		t.Errorf("truncation failed: depth %d", s.Top())
	}
	s.SetTop(0)

	// Pad to three results.
	s.PushValue(two)
	s.Call(0, 3)
	if s.Top() != 3 || s.At(3) != Nil {
		t.Errorf("padding failed: depth %d", s.Top())
	}
}

func TestCallNonFunction(t *testing.T) {
	s := NewState()
	s.PushValue(FromSmallInt(1))
	err := s.ProtectedCall(func() { s.Call(0, 0) })
	if err == nil {
		t.Fatal("expected error calling a number")
	}
	if !strings.Contains(err.Error(), "attempt to call") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestProtectedCallRestoresDepth(t *testing.T) {
	s := NewState()
	s.PushValue(FromSmallInt(1))

	err := s.ProtectedCall(func() {
		s.PushValue(FromSmallInt(2))
		s.PushValue(FromSmallInt(3))
		s.RaiseError("boom %d", 7)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "boom 7" {
		t.Errorf("unexpected message: %v", err)
	}
	if s.Top() != 1 {
		t.Errorf("depth not restored: %d", s.Top())
	}
}

func TestProtectedCallPassesForeignPanics(t *testing.T) {
	s := NewState()
	defer func() {
		if recover() == nil {
			t.Error("foreign panic should propagate")
		}
	}()
	s.ProtectedCall(func() { panic("not a runtime error") })
}
