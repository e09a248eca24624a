// Package manifest handles selene.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a selene.toml project configuration.
type Manifest struct {
	Project  Project  `toml:"project"`
	Modules  Modules  `toml:"modules"`
	SQL      SQL      `toml:"sql"`
	Bindings Bindings `toml:"bindings"`

	// Dir is the directory containing the selene.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Modules selects which host modules get registered into the state.
type Modules struct {
	SQL  bool `toml:"sql"`
	CBOR bool `toml:"cbor"`
}

// SQL configures the sql host module.
type SQL struct {
	Path string `toml:"path"`
}

// Bindings configures generated Go package bindings for selene-gen.
type Bindings struct {
	Output   string           `toml:"output"`
	Packages []BindingPackage `toml:"packages"`
}

// BindingPackage names a Go package to wrap. Include, if non-empty,
// restricts which exported names are bound.
type BindingPackage struct {
	Import  string   `toml:"import"`
	Include []string `toml:"include"`
}

// Default returns the configuration used when no selene.toml is present:
// every module enabled, in-memory database.
func Default() *Manifest {
	return &Manifest{
		Modules: Modules{SQL: true, CBOR: true},
		SQL:     SQL{Path: ":memory:"},
	}
}

// Load parses a selene.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "selene.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.SQL.Path == "" {
		m.SQL.Path = ":memory:"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a selene.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "selene.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// DatabasePath returns the sql module's database path, resolved against
// the manifest directory unless absolute or in-memory.
func (m *Manifest) DatabasePath() string {
	if m.SQL.Path == ":memory:" || filepath.IsAbs(m.SQL.Path) || m.Dir == "" {
		return m.SQL.Path
	}
	return filepath.Join(m.Dir, m.SQL.Path)
}

// BindingsOutputDir returns the directory generated bindings are written to,
// resolved against the manifest directory.
func (m *Manifest) BindingsOutputDir() string {
	out := m.Bindings.Output
	if out == "" {
		out = ".selene/bindings"
	}
	if filepath.IsAbs(out) || m.Dir == "" {
		return out
	}
	return filepath.Join(m.Dir, out)
}
