package vm

// Type is the runtime type tag the VM attaches to every live stack slot.
type Type int

// Runtime type tags, in the conventional stack-VM order.
// TypeNone is reported for positions outside the current stack.
const (
	TypeNone Type = iota - 1
	TypeNil
	TypeBoolean
	TypeNumber
	TypeString
	TypeTable
	TypeFunction
	TypeUserdata
)

var typeNames = map[Type]string{
	TypeNone:     "none",
	TypeNil:      "nil",
	TypeBoolean:  "boolean",
	TypeNumber:   "number",
	TypeString:   "string",
	TypeTable:    "table",
	TypeFunction: "function",
	TypeUserdata: "userdata",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Type returns the runtime type tag for v. The tag is derived entirely
// from the value's NaN-boxing bits; no registry access is needed.
func (v Value) Type() Type {
	switch {
	case v.IsSpecial():
		if v == Nil {
			return TypeNil
		}
		return TypeBoolean
	case v.IsFloat(), v.IsSmallInt():
		return TypeNumber
	case v.IsHandle():
		switch v.HandleID() & markerMask {
		case stringMarker:
			return TypeString
		case tableMarker:
			return TypeTable
		case functionMarker:
			return TypeFunction
		case userdataMarker:
			return TypeUserdata
		}
	}
	return TypeNone
}
