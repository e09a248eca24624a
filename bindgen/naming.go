package bindgen

import (
	"strings"
	"unicode"
)

// GlobalName converts a Go function name to the VM global it is bound under.
// The package name is prefixed to avoid collisions between wrapped packages.
// e.g., "strings" + "Contains" → "stringsContains"
func GlobalName(pkgName, funcName string) string {
	return toCamel(pkgName) + funcName
}

// MethodGlobalName converts a method on a wrapped type to its VM global.
// The receiver is passed as the first argument of the bound function.
// e.g., "Builder" + "WriteString" → "builderWriteString"
func MethodGlobalName(typeName, methodName string) string {
	return toCamel(typeName) + methodName
}

// UserdataName is the name a wrapped struct type is registered under in the
// state's type registry. e.g., "strings" + "Builder" → "strings.Builder"
func UserdataName(pkgName, typeName string) string {
	return pkgName + "." + typeName
}

// GeneratedPackageName is the Go package name of the generated file.
// e.g., "strings" → "selene_strings", "go-sqlite" → "selene_go_sqlite"
func GeneratedPackageName(pkgName string) string {
	return "selene_" + strings.ReplaceAll(pkgName, "-", "_")
}

// toCamel converts a PascalCase or hyphenated name to camelCase.
func toCamel(s string) string {
	if len(s) == 0 {
		return s
	}

	var b strings.Builder
	nextUpper := false
	for i, r := range s {
		if r == '-' || r == '_' {
			nextUpper = true
			continue
		}
		switch {
		case i == 0:
			b.WriteRune(unicode.ToLower(r))
		case nextUpper:
			b.WriteRune(unicode.ToUpper(r))
			nextUpper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
