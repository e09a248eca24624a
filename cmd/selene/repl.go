package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chazu/selene/vm"
)

// runREPL starts an interactive read-eval-print loop over stack commands.
func runREPL(s *vm.State) {
	fmt.Println("Selene REPL (type 'exit' to quit, ':help' for commands)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%d]> ", s.Top())

		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if strings.HasPrefix(line, ":") {
			handleREPLCommand(s, line)
			continue
		}

		if err := execLine(s, line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func handleREPLCommand(s *vm.State, line string) {
	switch line {
	case ":help":
		fmt.Println("Stack commands:")
		fmt.Println("  push-int N / push-num F / push-str TEXT / push-bool B / push-nil")
		fmt.Println("  pop KIND (int, num, str, bool)   print   type [IDX]   top")
		fmt.Println("  dup   drop [N]   global NAME   setglobal NAME   call NARGS NRES")
		fmt.Println("REPL commands:")
		fmt.Println("  :help   :stack   :globals   exit")

	case ":stack":
		if s.Top() == 0 {
			fmt.Println("(empty)")
			return
		}
		for i := s.Top(); i >= 1; i-- {
			fmt.Printf("  %3d  %-9s %s\n", i, s.TypeAt(i), formatValue(s, s.At(i)))
		}

	case ":globals":
		names := s.GlobalNames()
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-20s %s\n", name, formatValue(s, s.Global(name)))
		}

	default:
		fmt.Printf("Unknown command %s (try :help)\n", line)
	}
}
