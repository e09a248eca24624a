package vm

import (
	"reflect"
	"testing"
)

func TestGoTypeRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewGoTypeRegistry()

	type Foo struct{ X int }
	fooType := reflect.TypeOf((*Foo)(nil))

	id := reg.Register(fooType, "Foo")
	if id == 0 {
		t.Fatal("expected non-zero type ID")
	}

	info := reg.Lookup(id)
	if info == nil {
		t.Fatal("expected to find type info by ID")
	}
	if info.Name != "Foo" {
		t.Errorf("expected name Foo, got %s", info.Name)
	}
	if info.GoType != fooType {
		t.Error("Go type mismatch")
	}

	info2 := reg.LookupByType(fooType)
	if info2 == nil || info2.TypeID != id {
		t.Error("LookupByType failed")
	}

	// Duplicate registration returns same ID
	if id2 := reg.Register(fooType, "Foo"); id2 != id {
		t.Errorf("expected same ID %d on re-register, got %d", id, id2)
	}

	if reg.Count() != 1 {
		t.Errorf("expected count 1, got %d", reg.Count())
	}
}

func TestGoTypeRegistry_MultipleTypes(t *testing.T) {
	reg := NewGoTypeRegistry()

	type A struct{}
	type B struct{}

	idA := reg.Register(reflect.TypeOf((*A)(nil)), "A")
	idB := reg.Register(reflect.TypeOf((*B)(nil)), "B")

	if idA == idB {
		t.Error("expected different IDs for different types")
	}
	if reg.Count() != 2 {
		t.Errorf("expected count 2, got %d", reg.Count())
	}
}

func TestUserdataRegistry(t *testing.T) {
	or := NewObjectRegistry()

	v := or.NewUserdata(1, "payload")
	if !v.IsUserdata() {
		t.Fatal("expected userdata handle")
	}

	ud := or.Userdata(v)
	if ud == nil {
		t.Fatal("expected to retrieve userdata")
	}
	if ud.TypeID != 1 || ud.Value != "payload" {
		t.Error("userdata contents wrong")
	}

	// Wrong-marker values return nil rather than misresolving.
	if or.Userdata(or.NewString("x")) != nil {
		t.Error("string handle must not resolve as userdata")
	}
}

func TestStringRegistry(t *testing.T) {
	or := NewObjectRegistry()

	v := or.NewString("hello\x00world")
	content, ok := or.StringContent(v)
	if !ok {
		t.Fatal("expected string content")
	}
	if content != "hello\x00world" {
		t.Errorf("embedded NUL lost: %q", content)
	}
	if len(content) != 11 {
		t.Errorf("length %d, want 11", len(content))
	}
}
