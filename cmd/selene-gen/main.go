// selene-gen generates Go binding files that register a Go package's
// exported API with a Selene VM state.
//
// Usage:
//
//	selene-gen                      # all packages from selene.toml [bindings]
//	selene-gen strings              # single package, ad-hoc
//	selene-gen -o ./gen strings     # custom output dir
//	selene-gen -only Contains,Builder strings
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/selene/bindgen"
	"github.com/chazu/selene/manifest"
)

func main() {
	outputDir := flag.String("o", "", "Output directory for generated files")
	only := flag.String("only", "", "Comma-separated exported names to include")
	configDir := flag.String("c", ".", "Directory to search for selene.toml")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: selene-gen [options] [import-paths...]\n\n")
		fmt.Fprintf(os.Stderr, "Generates binding files for the given Go packages, or for the\n")
		fmt.Fprintf(os.Stderr, "[bindings] section of selene.toml when no packages are given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var targets []genTarget

	if args := flag.Args(); len(args) > 0 {
		var include []string
		if *only != "" {
			include = strings.Split(*only, ",")
		}
		for _, importPath := range args {
			targets = append(targets, genTarget{ImportPath: importPath, Include: include})
		}
	} else {
		m, err := manifest.FindAndLoad(*configDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
			os.Exit(1)
		}
		if m == nil {
			fmt.Fprintln(os.Stderr, "Error: no selene.toml found and no packages specified")
			fmt.Fprintln(os.Stderr, "Usage: selene-gen [packages...] or configure [bindings] in selene.toml")
			os.Exit(1)
		}
		if len(m.Bindings.Packages) == 0 {
			fmt.Fprintln(os.Stderr, "No [[bindings.packages]] configured in selene.toml")
			os.Exit(1)
		}
		if *outputDir == "" {
			*outputDir = m.BindingsOutputDir()
		}
		for _, pkg := range m.Bindings.Packages {
			targets = append(targets, genTarget{ImportPath: pkg.Import, Include: pkg.Include})
		}
	}

	if *outputDir == "" {
		*outputDir = ".selene/bindings"
	}

	for _, target := range targets {
		if err := generate(target, *outputDir, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error wrapping %s: %v\n", target.ImportPath, err)
			os.Exit(1)
		}
	}

	if *verbose {
		fmt.Printf("Generated bindings for %d package(s) in %s\n", len(targets), *outputDir)
	}
}

type genTarget struct {
	ImportPath string
	Include    []string
}

func generate(target genTarget, outputDir string, verbose bool) error {
	if verbose {
		fmt.Printf("Wrapping %s...\n", target.ImportPath)
	}

	var filter map[string]bool
	if len(target.Include) > 0 {
		filter = make(map[string]bool)
		for _, name := range target.Include {
			filter[strings.TrimSpace(name)] = true
		}
	}

	model, err := bindgen.IntrospectPackage(target.ImportPath, filter)
	if err != nil {
		return fmt.Errorf("introspecting: %w", err)
	}

	if verbose {
		fmt.Printf("  Found %d functions, %d types, %d constants\n",
			len(model.Functions), len(model.Types), len(model.Constants))
	}

	code, err := bindgen.GenerateBindings(model)
	if err != nil {
		return fmt.Errorf("generating bindings: %w", err)
	}

	pkgDir := filepath.Join(outputDir, strings.ReplaceAll(model.Name, "-", "_"))
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	outPath := filepath.Join(pkgDir, "bindings.go")
	if err := os.WriteFile(outPath, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if verbose {
		fmt.Printf("  Wrote %s\n", outPath)
	}

	return nil
}
