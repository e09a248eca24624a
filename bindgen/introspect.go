package bindgen

import (
	"fmt"
	"go/constant"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/packages"
)

// IntrospectPackage loads a Go package by import path and returns its API model.
// The includeFilter, if non-nil, restricts which exported names are included.
// Functions whose signatures cannot cross the bridge are silently skipped.
func IntrospectPackage(importPath string, includeFilter map[string]bool) (*PackageModel, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax,
	}

	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", importPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", importPath)
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkgs[0].Errors)
	}

	pkg := pkgs[0]
	if pkg.Types == nil {
		return nil, fmt.Errorf("type information not available for %s", importPath)
	}

	model := &PackageModel{
		ImportPath: importPath,
		Name:       pkg.Name,
	}

	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		if includeFilter != nil && !includeFilter[name] {
			continue
		}

		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}

		switch o := obj.(type) {
		case *types.Func:
			fm, ok := extractFunction(o, pkg.Types)
			if ok {
				model.Functions = append(model.Functions, fm)
			}

		case *types.TypeName:
			tm := extractType(o, pkg.Types)
			if tm != nil {
				model.Types = append(model.Types, *tm)
			}

		case *types.Const:
			cm, ok := extractConstant(o)
			if ok {
				model.Constants = append(model.Constants, cm)
			}
		}
	}

	return model, nil
}

func extractFunction(fn *types.Func, pkg *types.Package) (FunctionModel, bool) {
	sig := fn.Type().(*types.Signature)
	if !bridgeableSignature(sig, pkg) {
		return FunctionModel{}, false
	}
	return functionModelFromSig(fn.Name(), sig, pkg, false, ""), true
}

func extractType(tn *types.TypeName, pkg *types.Package) *TypeModel {
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil
	}
	if named.TypeParams() != nil && named.TypeParams().Len() > 0 {
		return nil
	}

	tm := &TypeModel{
		Name:   tn.Name(),
		GoType: tn.Type(),
	}

	// Pointer-receiver methods directly defined on this type.
	ptrType := types.NewPointer(named)
	mset := types.NewMethodSet(ptrType)
	for i := 0; i < mset.Len(); i++ {
		sel := mset.At(i)
		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		if sel.Index() != nil && len(sel.Index()) > 1 {
			continue
		}
		sig := fn.Type().(*types.Signature)
		if !bridgeableSignature(sig, pkg) {
			continue
		}
		tm.Methods = append(tm.Methods, functionModelFromSig(fn.Name(), sig, pkg, true, "*"+tn.Name()))
	}

	return tm
}

// extractConstant renders a constant as a Go literal plus the conversion the
// generated file wraps it in. Untyped constants get their default category's
// 64-bit type so the literal always has a concrete type.
func extractConstant(c *types.Const) (ConstantModel, bool) {
	basic, ok := c.Type().Underlying().(*types.Basic)
	if !ok {
		return ConstantModel{}, false
	}

	val := c.Val()
	cm := ConstantModel{Name: c.Name()}
	switch {
	case basic.Info()&types.IsString != 0:
		cm.Value = fmt.Sprintf("%q", constant.StringVal(val))

	case basic.Info()&types.IsBoolean != 0:
		cm.Value = val.ExactString()

	case basic.Info()&types.IsInteger != 0:
		if i, ok := constant.Int64Val(val); ok {
			cm.TypeStr = "int64"
			cm.Value = strconv.FormatInt(i, 10)
		} else if u, ok := constant.Uint64Val(val); ok {
			cm.TypeStr = "uint64"
			cm.Value = strconv.FormatUint(u, 10)
		} else {
			return ConstantModel{}, false
		}

	case basic.Info()&types.IsFloat != 0:
		f, _ := constant.Float64Val(val)
		cm.TypeStr = "float64"
		cm.Value = strconv.FormatFloat(f, 'g', -1, 64)

	default:
		return ConstantModel{}, false
	}

	return cm, true
}

func functionModelFromSig(name string, sig *types.Signature, pkg *types.Package, isMethod bool, recvType string) FunctionModel {
	fm := FunctionModel{
		Name:     name,
		IsMethod: isMethod,
		RecvType: recvType,
	}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		fm.Params = append(fm.Params, ParamModel{
			Name:    p.Name(),
			GoType:  p.Type(),
			TypeStr: types.TypeString(p.Type(), qualifier(pkg)),
		})
	}

	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		r := results.At(i)
		fm.Results = append(fm.Results, ParamModel{
			Name:    r.Name(),
			GoType:  r.Type(),
			TypeStr: types.TypeString(r.Type(), qualifier(pkg)),
		})
	}

	if results.Len() > 0 && isErrorType(results.At(results.Len()-1).Type()) {
		fm.ReturnsErr = true
	}

	return fm
}

// bridgeableSignature reports whether every parameter and result of sig can
// cross the bridge. A trailing error result is allowed; variadic and generic
// signatures are not.
func bridgeableSignature(sig *types.Signature, pkg *types.Package) bool {
	if sig.Variadic() {
		return false
	}
	if sig.TypeParams() != nil && sig.TypeParams().Len() > 0 {
		return false
	}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		if !bridgeable(params.At(i).Type(), pkg, nil) {
			return false
		}
	}

	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		t := results.At(i).Type()
		if i == results.Len()-1 && isErrorType(t) {
			continue
		}
		if !bridgeable(t, pkg, nil) {
			return false
		}
	}

	return true
}

// bridgeable reports whether values of type t have a VM value category.
// It mirrors the runtime classifier: booleans, integers, floats, strings,
// byte slices, slices, arrays, maps, structs, and pointers to structs.
// Types from foreign packages are rejected because the generated file
// cannot import them.
func bridgeable(t types.Type, pkg *types.Package, seen map[types.Type]bool) bool {
	if seen[t] {
		return true
	}
	if seen == nil {
		seen = make(map[types.Type]bool)
	}
	seen[t] = true

	switch u := t.(type) {
	case *types.Basic:
		info := u.Info()
		return info&(types.IsBoolean|types.IsInteger|types.IsFloat|types.IsString) != 0

	case *types.Slice:
		return bridgeable(u.Elem(), pkg, seen)

	case *types.Array:
		return bridgeable(u.Elem(), pkg, seen)

	case *types.Map:
		return bridgeable(u.Key(), pkg, seen) && bridgeable(u.Elem(), pkg, seen)

	case *types.Pointer:
		// Pointers to named structs cross as userdata; the struct contents
		// stay opaque, so foreign field types do not matter.
		named, ok := u.Elem().(*types.Named)
		if !ok {
			return false
		}
		if _, ok := named.Underlying().(*types.Struct); !ok {
			return false
		}
		return named.Obj().Pkg() == nil || named.Obj().Pkg() == pkg

	case *types.Named:
		if u.Obj().Pkg() != nil && u.Obj().Pkg() != pkg {
			return false
		}
		if st, ok := u.Underlying().(*types.Struct); ok {
			for i := 0; i < st.NumFields(); i++ {
				f := st.Field(i)
				if f.Exported() && !bridgeable(f.Type(), pkg, seen) {
					return false
				}
			}
			return true
		}
		return bridgeable(u.Underlying(), pkg, seen)

	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if f.Exported() && !bridgeable(f.Type(), pkg, seen) {
				return false
			}
		}
		return true
	}

	return false
}

func isErrorType(t types.Type) bool {
	iface, ok := t.Underlying().(*types.Interface)
	if !ok {
		if named, ok := t.(*types.Named); ok {
			return named.Obj().Name() == "error" && named.Obj().Pkg() == nil
		}
		return false
	}
	if iface.NumMethods() == 1 {
		m := iface.Method(0)
		return m.Name() == "Error"
	}
	return false
}

// qualifier renders types from the wrapped package with the "pkg" alias the
// generated file imports it under.
func qualifier(pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if other == pkg {
			return "pkg"
		}
		return other.Name()
	}
}
