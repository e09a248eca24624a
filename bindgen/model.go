// Package bindgen introspects Go packages and generates Selene bridge
// registrations for their exported API.
package bindgen

import "go/types"

// PackageModel is the in-memory representation of a Go package's exported API.
type PackageModel struct {
	ImportPath string
	Name       string // short package name (e.g., "strings")
	Functions  []FunctionModel
	Types      []TypeModel
	Constants  []ConstantModel
}

// TypeModel represents an exported struct type wrapped as userdata.
type TypeModel struct {
	Name    string
	GoType  types.Type
	Methods []FunctionModel // pointer-receiver methods
}

// FunctionModel represents an exported function or method.
type FunctionModel struct {
	Name       string
	IsMethod   bool
	RecvType   string // non-empty for methods (e.g., "*Builder")
	Params     []ParamModel
	Results    []ParamModel
	ReturnsErr bool // true if last result is error
}

// ParamModel represents a function parameter or result.
type ParamModel struct {
	Name    string
	GoType  types.Type
	TypeStr string // rendered with the wrapped package qualified as "pkg"
}

// ConstantModel represents an exported constant of a bridgeable basic type.
type ConstantModel struct {
	Name    string
	TypeStr string // conversion the literal is wrapped in, empty for bool/string
	Value   string // Go literal
}
