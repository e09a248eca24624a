package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "selene.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing selene.toml: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[project]
name = "demo"
version = "0.1.0"

[modules]
sql = true
cbor = false

[sql]
path = "state.db"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Project.Name != "demo" || m.Project.Version != "0.1.0" {
		t.Errorf("project: %+v", m.Project)
	}
	if !m.Modules.SQL || m.Modules.CBOR {
		t.Errorf("modules: %+v", m.Modules)
	}
	if m.DatabasePath() != filepath.Join(m.Dir, "state.db") {
		t.Errorf("DatabasePath: %s", m.DatabasePath())
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[project]
name = "empty"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.SQL.Path != ":memory:" {
		t.Errorf("default sql path: %s", m.SQL.Path)
	}
	if m.DatabasePath() != ":memory:" {
		t.Errorf("in-memory path must not be resolved: %s", m.DatabasePath())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for missing selene.toml")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"up\"\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m == nil || m.Project.Name != "up" {
		t.Errorf("expected manifest from ancestor, got %+v", m)
	}
}

func TestLoadBindings(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[project]
name = "demo"

[bindings]
output = "gen"

[[bindings.packages]]
import = "strings"
include = ["Contains", "Builder"]

[[bindings.packages]]
import = "math"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Bindings.Packages) != 2 {
		t.Fatalf("expected 2 binding packages, got %d", len(m.Bindings.Packages))
	}
	if m.Bindings.Packages[0].Import != "strings" || len(m.Bindings.Packages[0].Include) != 2 {
		t.Errorf("first package: %+v", m.Bindings.Packages[0])
	}
	if m.BindingsOutputDir() != filepath.Join(m.Dir, "gen") {
		t.Errorf("BindingsOutputDir: %s", m.BindingsOutputDir())
	}
}

func TestBindingsOutputDirDefault(t *testing.T) {
	m := Default()
	if m.BindingsOutputDir() != ".selene/bindings" {
		t.Errorf("default bindings output: %s", m.BindingsOutputDir())
	}
}

func TestDefault(t *testing.T) {
	m := Default()
	if !m.Modules.SQL || !m.Modules.CBOR {
		t.Error("default should enable all modules")
	}
	if m.SQL.Path != ":memory:" {
		t.Errorf("default sql path: %s", m.SQL.Path)
	}
}
