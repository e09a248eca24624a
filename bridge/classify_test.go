package bridge

import (
	"reflect"
	"strings"
	"testing"
)

type namedBool bool
type namedInt int
type namedString string
type point struct{ X, Y int }

func TestClassifyPrecedence(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		want Kind
	}{
		{reflect.TypeOf(Ref{}), KindDynamic},
		{reflect.TypeOf(None{}), KindNil},
		{reflect.TypeOf(true), KindBoolean},
		{reflect.TypeOf(namedBool(false)), KindBoolean},
		{reflect.TypeOf(int(0)), KindNumber},
		{reflect.TypeOf(int8(0)), KindNumber},
		{reflect.TypeOf(uint64(0)), KindNumber},
		{reflect.TypeOf(namedInt(0)), KindNumber},
		{reflect.TypeOf(float32(0)), KindNumber},
		{reflect.TypeOf(float64(0)), KindNumber},
		{reflect.TypeOf(""), KindString},
		{reflect.TypeOf(namedString("")), KindString},
		{reflect.TypeOf([]byte(nil)), KindString},
		{reflect.TypeOf([]int(nil)), KindTable},
		{reflect.TypeOf([3]string{}), KindTable},
		{reflect.TypeOf(map[string]int(nil)), KindTable},
		{reflect.TypeOf(point{}), KindTable},
		{reflect.TypeOf(func(int) int { return 0 }), KindFunction},
		{reflect.TypeOf(&point{}), KindUserdata},
	}
	for _, c := range cases {
		if got := KindOfType(c.typ); got != c.want {
			t.Errorf("KindOfType(%s) = %s, want %s", c.typ, got, c.want)
		}
	}
}

// A type convertible to bool semantics must never fall through to number,
// and byte buffers must never fall through to table: first match wins.
func TestClassifyFirstMatchWins(t *testing.T) {
	if KindOfType(reflect.TypeOf(namedBool(true))) == KindNumber {
		t.Error("boolean-like type reclassified as number")
	}
	if KindOfType(reflect.TypeOf([]byte(nil))) == KindTable {
		t.Error("byte buffer reclassified as table")
	}
}

func TestKindForMatchesKindOfType(t *testing.T) {
	if KindFor[bool]() != KindBoolean ||
		KindFor[int]() != KindNumber ||
		KindFor[string]() != KindString ||
		KindFor[Ref]() != KindDynamic ||
		KindFor[None]() != KindNil {
		t.Error("KindFor disagrees with KindOfType")
	}
}

func TestClassifyUnsupportedPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for chan type")
		}
		if !strings.Contains(r.(string), "no VM value category") {
			t.Errorf("unexpected panic message: %v", r)
		}
	}()
	KindOfType(reflect.TypeOf(make(chan int)))
}

func TestKindStrings(t *testing.T) {
	for k, want := range map[Kind]string{
		KindNil: "nil", KindBoolean: "boolean", KindNumber: "number",
		KindString: "string", KindTable: "table", KindFunction: "function",
		KindUserdata: "userdata", KindDynamic: "dynamic",
	} {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %s, want %s", k, k.String(), want)
		}
	}
}
