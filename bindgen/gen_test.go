package bindgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateBindings_Strings(t *testing.T) {
	model, err := IntrospectPackage("strings", map[string]bool{
		"Contains":  true,
		"HasPrefix": true,
		"Builder":   true,
	})
	if err != nil {
		t.Fatalf("IntrospectPackage: %v", err)
	}

	code, err := GenerateBindings(model)
	if err != nil {
		t.Fatalf("GenerateBindings: %v", err)
	}

	// Basic sanity checks
	if !strings.Contains(code, "package selene_strings") {
		t.Error("expected package declaration")
	}
	if !strings.Contains(code, `pkg "strings"`) {
		t.Error("expected strings import")
	}
	if !strings.Contains(code, "func Register(s *vm.State)") {
		t.Error("expected Register function")
	}
	if !strings.Contains(code, `"stringsContains"`) {
		t.Error("expected stringsContains global")
	}
	if !strings.Contains(code, `"stringsHasPrefix"`) {
		t.Error("expected stringsHasPrefix global")
	}
	if !strings.Contains(code, `"strings.Builder"`) {
		t.Error("expected Types().Register call for Builder")
	}
	if !strings.Contains(code, `"builderWriteString"`) {
		t.Error("expected builderWriteString method binding")
	}
	if !strings.Contains(code, "recv *pkg.Builder") {
		t.Error("expected receiver as first closure parameter")
	}

	// Golden file test
	goldenFile := filepath.Join("testdata", "strings_bindings.go.golden")
	updateGolden(t, goldenFile, code)
	compareGolden(t, goldenFile, code)
}

func TestGenerateBindings_Constants(t *testing.T) {
	model, err := IntrospectPackage("math", map[string]bool{
		"Pi": true,
	})
	if err != nil {
		t.Fatalf("IntrospectPackage: %v", err)
	}

	code, err := GenerateBindings(model)
	if err != nil {
		t.Fatalf("GenerateBindings: %v", err)
	}

	if !strings.Contains(code, `"mathPi"`) {
		t.Error("expected mathPi global")
	}
	if !strings.Contains(code, "float64(") {
		t.Error("expected float64 conversion for Pi")
	}
}

func TestGenerateBindings_EmptyModel(t *testing.T) {
	model := &PackageModel{
		ImportPath: "empty/pkg",
		Name:       "pkg",
	}

	code, err := GenerateBindings(model)
	if err != nil {
		t.Fatalf("GenerateBindings: %v", err)
	}

	if !strings.Contains(code, "func Register(s *vm.State)") {
		t.Error("expected Register even for empty package")
	}
}

func TestGenerateBindings_NilModel(t *testing.T) {
	if _, err := GenerateBindings(nil); err == nil {
		t.Error("expected error for nil model")
	}
}

// Golden file helpers

func updateGolden(t *testing.T, path, content string) {
	t.Helper()
	if os.Getenv("UPDATE_GOLDEN") == "" {
		return
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating testdata dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("updating golden file: %v", err)
	}
}

func compareGolden(t *testing.T, path, got string) {
	t.Helper()
	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Logf("Golden file %s does not exist. Run with UPDATE_GOLDEN=1 to create.", path)
		return
	}
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if string(expected) != got {
		t.Errorf("output differs from golden file %s.\nRun with UPDATE_GOLDEN=1 to update.", path)
	}
}
