package bridge

import "github.com/chazu/selene/vm"

// Kind is the value category a host type maps to. Every supported Go type
// classifies to exactly one Kind; every live stack slot carries exactly
// one of the non-Dynamic kinds as its runtime tag.
//
// Dynamic is the meta-category for the Ref wrapper: a type-erased handle
// to whatever value occupies a stack position. It participates in no
// category check.
type Kind int

const (
	KindNil Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindTable
	KindFunction
	KindUserdata
	KindDynamic
)

var kindNames = [...]string{
	KindNil:      "nil",
	KindBoolean:  "boolean",
	KindNumber:   "number",
	KindString:   "string",
	KindTable:    "table",
	KindFunction: "function",
	KindUserdata: "userdata",
	KindDynamic:  "dynamic",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindOf returns the category of the VM's runtime type tag. Positions
// outside the stack (TypeNone) report as nil, matching the VM's own
// reading of absent slots.
func KindOf(t vm.Type) Kind {
	switch t {
	case vm.TypeBoolean:
		return KindBoolean
	case vm.TypeNumber:
		return KindNumber
	case vm.TypeString:
		return KindString
	case vm.TypeTable:
		return KindTable
	case vm.TypeFunction:
		return KindFunction
	case vm.TypeUserdata:
		return KindUserdata
	default:
		return KindNil
	}
}

// None is the explicit absence marker type. Pushing a None pushes the
// VM's nil value; it classifies as KindNil ahead of every other category.
type None struct{}
