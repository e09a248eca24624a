package bindgen

import (
	"testing"
)

func TestIntrospectPackage_Strings(t *testing.T) {
	model, err := IntrospectPackage("strings", nil)
	if err != nil {
		t.Fatalf("IntrospectPackage(strings): %v", err)
	}

	if model.ImportPath != "strings" {
		t.Errorf("expected import path 'strings', got %q", model.ImportPath)
	}
	if model.Name != "strings" {
		t.Errorf("expected package name 'strings', got %q", model.Name)
	}

	foundContains := false
	foundReplace := false
	for _, fn := range model.Functions {
		switch fn.Name {
		case "Contains":
			foundContains = true
			if len(fn.Params) != 2 {
				t.Errorf("Contains: expected 2 params, got %d", len(fn.Params))
			}
			if len(fn.Results) != 1 {
				t.Errorf("Contains: expected 1 result, got %d", len(fn.Results))
			}
		case "Replace":
			foundReplace = true
		}
	}
	if !foundContains {
		t.Error("expected to find Contains function")
	}
	if !foundReplace {
		t.Error("expected to find Replace function")
	}

	foundBuilder := false
	for _, tp := range model.Types {
		if tp.Name == "Builder" {
			foundBuilder = true
			foundWriteString := false
			for _, m := range tp.Methods {
				if m.Name == "WriteString" {
					foundWriteString = true
					if !m.ReturnsErr {
						t.Error("WriteString should return error")
					}
				}
			}
			if !foundWriteString {
				t.Error("expected Builder to have WriteString method")
			}
		}
	}
	if !foundBuilder {
		t.Error("expected to find Builder type")
	}
}

func TestIntrospectPackage_WithFilter(t *testing.T) {
	filter := map[string]bool{
		"Contains":  true,
		"HasPrefix": true,
	}
	model, err := IntrospectPackage("strings", filter)
	if err != nil {
		t.Fatalf("IntrospectPackage(strings, filter): %v", err)
	}

	if len(model.Functions) != 2 {
		t.Errorf("expected 2 functions with filter, got %d", len(model.Functions))
	}
	if len(model.Types) != 0 {
		t.Errorf("expected 0 types with filter, got %d", len(model.Types))
	}
}

func TestIntrospectPackage_SkipsUnbridgeable(t *testing.T) {
	model, err := IntrospectPackage("encoding/json", nil)
	if err != nil {
		t.Fatalf("IntrospectPackage(encoding/json): %v", err)
	}

	// Marshal takes an interface{} parameter, which has no VM category.
	for _, fn := range model.Functions {
		if fn.Name == "Marshal" {
			t.Error("Marshal should have been skipped (interface parameter)")
		}
	}

	// Valid([]byte) bool crosses cleanly.
	foundValid := false
	for _, fn := range model.Functions {
		if fn.Name == "Valid" {
			foundValid = true
		}
	}
	if !foundValid {
		t.Error("expected to find Valid function")
	}
}

func TestIntrospectPackage_SkipsVariadic(t *testing.T) {
	model, err := IntrospectPackage("strings", nil)
	if err != nil {
		t.Fatalf("IntrospectPackage(strings): %v", err)
	}

	for _, fn := range model.Functions {
		if fn.Name == "NewReplacer" {
			t.Error("NewReplacer should have been skipped (variadic)")
		}
	}
}

func TestIntrospectPackage_BadPath(t *testing.T) {
	_, err := IntrospectPackage("nonexistent/package/path", nil)
	if err == nil {
		t.Error("expected error for nonexistent package")
	}
}

func TestIntrospectPackage_Constants(t *testing.T) {
	model, err := IntrospectPackage("math", nil)
	if err != nil {
		t.Fatalf("IntrospectPackage(math): %v", err)
	}

	foundPi := false
	for _, c := range model.Constants {
		if c.Name == "Pi" {
			foundPi = true
			if c.TypeStr != "float64" {
				t.Errorf("Pi: expected float64 conversion, got %q", c.TypeStr)
			}
			if c.Value == "" {
				t.Error("Pi should have a value")
			}
		}
	}
	if !foundPi {
		t.Error("expected to find Pi constant")
	}
}
