// Selene CLI - runs stack scripts against a bridged VM state
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/selene/manifest"
	"github.com/chazu/selene/modules/cbormod"
	"github.com/chazu/selene/modules/sqlmod"
	"github.com/chazu/selene/vm"

	_ "github.com/chazu/selene/shape"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("selene.cli")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	configDir := flag.String("c", ".", "Directory to search for selene.toml")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: selene [options] [scripts...]\n\n")
		fmt.Fprintf(os.Stderr, "Runs .stk stack scripts against a fresh VM state.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  selene -i                # Start REPL\n")
		fmt.Fprintf(os.Stderr, "  selene demo.stk          # Run a script\n")
		fmt.Fprintf(os.Stderr, "  selene -c ./proj run.stk # Use ./proj/selene.toml\n")
	}
	flag.Parse()

	if *verbose {
		commonlog.Configure(1, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	m, err := manifest.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		m = manifest.Default()
	} else if *verbose {
		fmt.Printf("Loaded %s/selene.toml\n", m.Dir)
	}

	s := vm.NewState()
	if m.Modules.SQL {
		sqlmod.Register(s, m.DatabasePath())
		log.Debugf("registered sql module (path %s)", m.DatabasePath())
	}
	if m.Modules.CBOR {
		cbormod.Register(s)
		log.Debug("registered cbor module")
	}

	paths := flag.Args()
	for _, path := range paths {
		if err := runScript(s, path, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *interactive || len(paths) == 0 {
		runREPL(s)
	}
}
