package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/selene/bridge"
	"github.com/chazu/selene/vm"
)

// Stack scripts are line-oriented: one command per line, '#' starts a
// comment. Commands manipulate the VM stack through the bridge, so a
// script exercises exactly the conversions host code would.
//
//	push-int 42          push-str hello world     push-bool true
//	push-num 3.5         push-nil                 dup
//	pop int|num|str|bool print      type -1       top
//	global NAME          setglobal NAME           call NARGS NRES
//	drop N

// runScript executes every line of the file against the state.
func runScript(s *vm.State, path string, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if verbose {
		fmt.Printf("Running %s\n", path)
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execLine(s, line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	return scanner.Err()
}

// execLine runs a single command. Runtime errors raised by the VM are
// converted to error returns; the stack is restored to its depth before
// the failing command.
func execLine(s *vm.State, line string) error {
	return s.ProtectedCall(func() {
		out, err := evalCommand(s, line)
		if err != nil {
			s.RaiseError("%s", err)
		}
		if out != "" {
			fmt.Println(out)
		}
	})
}

func evalCommand(s *vm.State, line string) (string, error) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "push-int":
		if len(args) != 1 {
			return "", fmt.Errorf("push-int takes one argument")
		}
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return "", fmt.Errorf("push-int: %v", err)
		}
		bridge.Push(s, n)
		return "", nil

	case "push-num":
		if len(args) != 1 {
			return "", fmt.Errorf("push-num takes one argument")
		}
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", fmt.Errorf("push-num: %v", err)
		}
		bridge.Push(s, f)
		return "", nil

	case "push-str":
		// The rest of the line, verbatim.
		text := strings.TrimSpace(strings.TrimPrefix(line, cmd))
		bridge.Push(s, text)
		return "", nil

	case "push-bool":
		if len(args) != 1 || (args[0] != "true" && args[0] != "false") {
			return "", fmt.Errorf("push-bool takes true or false")
		}
		bridge.Push(s, args[0] == "true")
		return "", nil

	case "push-nil":
		s.PushValue(vm.Nil)
		return "", nil

	case "pop":
		if len(args) != 1 {
			return "", fmt.Errorf("pop takes a kind: int, num, str, or bool")
		}
		return popAs(s, args[0])

	case "print":
		return formatValue(s, s.At(-1)), nil

	case "type":
		idx := -1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return "", fmt.Errorf("type: %v", err)
			}
			idx = n
		}
		return s.TypeAt(idx).String(), nil

	case "top":
		return strconv.Itoa(s.Top()), nil

	case "dup":
		s.PushValue(s.At(-1))
		return "", nil

	case "drop":
		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return "", fmt.Errorf("drop: %v", err)
			}
			n = v
		}
		if n > s.Top() {
			return "", fmt.Errorf("drop %d: stack depth is %d", n, s.Top())
		}
		s.PopN(n)
		return "", nil

	case "global":
		if len(args) != 1 {
			return "", fmt.Errorf("global takes a name")
		}
		s.PushValue(s.Global(args[0]))
		return "", nil

	case "setglobal":
		if len(args) != 1 {
			return "", fmt.Errorf("setglobal takes a name")
		}
		if s.Top() == 0 {
			return "", fmt.Errorf("setglobal: stack is empty")
		}
		s.SetGlobal(args[0], s.At(-1))
		s.PopN(1)
		return "", nil

	case "call":
		if len(args) != 2 {
			return "", fmt.Errorf("call takes NARGS and NRES")
		}
		nargs, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("call: %v", err)
		}
		nres, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("call: %v", err)
		}
		s.Call(nargs, nres)
		return "", nil
	}

	return "", fmt.Errorf("unknown command %q", cmd)
}

// popAs pops the top slot through the bridge with the named expected kind.
// A category mismatch raises through the default handler.
func popAs(s *vm.State, kind string) (string, error) {
	if s.Top() == 0 {
		return "", fmt.Errorf("pop: stack is empty")
	}
	switch kind {
	case "int":
		return strconv.FormatInt(bridge.Pop[int64](s), 10), nil
	case "num":
		return strconv.FormatFloat(bridge.Pop[float64](s), 'g', -1, 64), nil
	case "str":
		return strconv.Quote(bridge.Pop[string](s)), nil
	case "bool":
		return strconv.FormatBool(bridge.Pop[bool](s)), nil
	}
	return "", fmt.Errorf("pop: unknown kind %q", kind)
}

// formatValue renders a stack value for display without converting it.
func formatValue(s *vm.State, v vm.Value) string {
	switch v.Type() {
	case vm.TypeNil:
		return "nil"
	case vm.TypeBoolean:
		return strconv.FormatBool(v.Bool())
	case vm.TypeNumber:
		if v.IsSmallInt() {
			return strconv.FormatInt(v.SmallInt(), 10)
		}
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case vm.TypeString:
		content, _ := s.Registry().StringContent(v)
		return strconv.Quote(content)
	case vm.TypeTable:
		return fmt.Sprintf("table: 0x%08x", v.HandleID())
	case vm.TypeFunction:
		if fo := s.Registry().Function(v); fo != nil && fo.Name != "" {
			return fmt.Sprintf("function: %s", fo.Name)
		}
		return fmt.Sprintf("function: 0x%08x", v.HandleID())
	case vm.TypeUserdata:
		if ud := s.Registry().Userdata(v); ud != nil {
			if info := s.Types().Lookup(ud.TypeID); info != nil {
				return fmt.Sprintf("userdata: %s", info.Name)
			}
		}
		return fmt.Sprintf("userdata: 0x%08x", v.HandleID())
	}
	return "none"
}
