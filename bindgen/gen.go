package bindgen

import (
	"fmt"
	"strings"
)

// GenerateBindings renders a Go source file that registers the model's
// functions, methods, struct types, and constants with a Selene state.
// The output imports the wrapped package under the alias "pkg" and exposes
// a single Register function.
func GenerateBindings(model *PackageModel) (string, error) {
	if model == nil {
		return "", fmt.Errorf("nil package model")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by selene-gen. DO NOT EDIT.\n")
	fmt.Fprintf(&b, "// Source package: %s\n\n", model.ImportPath)
	fmt.Fprintf(&b, "// Package %s binds the Go %q package into a Selene state.\n",
		GeneratedPackageName(model.Name), model.ImportPath)
	fmt.Fprintf(&b, "package %s\n\n", GeneratedPackageName(model.Name))

	b.WriteString("import (\n")
	b.WriteString("\t\"reflect\"\n\n")
	fmt.Fprintf(&b, "\tpkg %q\n\n", model.ImportPath)
	b.WriteString("\t\"github.com/chazu/selene/bridge\"\n")
	b.WriteString("\t_ \"github.com/chazu/selene/shape\"\n")
	b.WriteString("\t\"github.com/chazu/selene/vm\"\n")
	b.WriteString(")\n\n")

	b.WriteString("// Register binds the wrapped API into the state's globals.\n")
	b.WriteString("func Register(s *vm.State) {\n")

	for _, tm := range model.Types {
		fmt.Fprintf(&b, "\ts.Types().Register(reflect.TypeOf((*pkg.%s)(nil)), %q)\n",
			tm.Name, UserdataName(model.Name, tm.Name))
	}
	if len(model.Types) > 0 {
		b.WriteString("\n")
	}

	for _, fn := range model.Functions {
		fmt.Fprintf(&b, "\tbind(s, %q, pkg.%s)\n", GlobalName(model.Name, fn.Name), fn.Name)
	}

	for _, tm := range model.Types {
		for _, m := range tm.Methods {
			writeMethodBinding(&b, tm, m)
		}
	}

	if len(model.Constants) > 0 {
		b.WriteString("\n")
	}
	for _, c := range model.Constants {
		if c.TypeStr != "" {
			fmt.Fprintf(&b, "\tbind(s, %q, %s(%s))\n", GlobalName(model.Name, c.Name), c.TypeStr, c.Value)
		} else {
			fmt.Fprintf(&b, "\tbind(s, %q, %s)\n", GlobalName(model.Name, c.Name), c.Value)
		}
	}

	b.WriteString("}\n\n")

	b.WriteString("// bind pushes v through the bridge and stores the result as a global.\n")
	b.WriteString("func bind(s *vm.State, name string, v interface{}) {\n")
	b.WriteString("\tbridge.PushReflect(s, reflect.ValueOf(v))\n")
	b.WriteString("\tg := s.At(-1)\n")
	b.WriteString("\ts.PopN(1)\n")
	b.WriteString("\ts.SetGlobal(name, g)\n")
	b.WriteString("}\n")

	return b.String(), nil
}

// writeMethodBinding emits a closure that takes the receiver as its first
// argument, so VM code calls methods as plain functions.
func writeMethodBinding(b *strings.Builder, tm TypeModel, m FunctionModel) {
	params := make([]string, 0, len(m.Params)+1)
	args := make([]string, 0, len(m.Params))
	params = append(params, fmt.Sprintf("recv *pkg.%s", tm.Name))
	for i, p := range m.Params {
		params = append(params, fmt.Sprintf("p%d %s", i, p.TypeStr))
		args = append(args, fmt.Sprintf("p%d", i))
	}

	results := make([]string, 0, len(m.Results))
	for _, r := range m.Results {
		results = append(results, r.TypeStr)
	}
	resultStr := ""
	switch len(results) {
	case 0:
	case 1:
		resultStr = " " + results[0]
	default:
		resultStr = " (" + strings.Join(results, ", ") + ")"
	}

	call := fmt.Sprintf("recv.%s(%s)", m.Name, strings.Join(args, ", "))
	body := "\t\t" + call + "\n"
	if len(m.Results) > 0 {
		body = "\t\treturn " + call + "\n"
	}

	fmt.Fprintf(b, "\tbind(s, %q, func(%s)%s {\n%s\t})\n",
		MethodGlobalName(tm.Name, m.Name), strings.Join(params, ", "), resultStr, body)
}
