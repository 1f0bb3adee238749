// Command comet2 loads and executes a COMET II object file, with an
// optional interactive debugger, watch mode, and full-screen TUI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/comet2/casl2comet/debugger"
	"github.com/comet2/casl2comet/object"
	"github.com/comet2/casl2comet/vm"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("comet2", flag.ContinueOnError)
	fs.SetOutput(stderr)
	countStep := fs.Bool("c", false, "print the step count on exit")
	dumpState := fs.Bool("d", false, "dump last_state.txt on exit")
	runOnly := fs.Bool("r", false, "run to completion instead of entering the REPL")
	watch := fs.String("w", "", "comma-separated watch expressions, enables watch mode")
	decimalFlag := fs.Bool("D", false, "render watch-mode registers as signed decimal")
	tui := fs.Bool("tui", false, "run the full-screen debugger")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(stderr, "usage: comet2 [-c] [-d] [-r] [-w vars] [-D] [-tui] input.com")
		return 2
	}

	f, err := os.Open(rest[0]) // #nosec G304 -- user-specified object path
	if err != nil {
		fmt.Fprintf(stderr, "comet2: %v\n", err)
		return 1
	}
	obj, err := object.Read(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(stderr, "comet2: %v\n", err)
		return 1
	}

	m := vm.NewVM(stdin, stdout, stderr)
	if err := m.Load(obj.Entry, obj.Image); err != nil {
		fmt.Fprintf(stderr, "comet2: %v\n", err)
		return 1
	}

	dbg := debugger.NewDebugger(m, stdin, stdout, stderr)

	switch {
	case *tui:
		if err := debugger.RunTUI(dbg); err != nil {
			fmt.Fprintf(stderr, "comet2: %v\n", err)
			return 1
		}
	case *watch != "":
		vars := strings.Split(*watch, ",")
		if err := debugger.RunWatch(dbg, stdout, vars, *decimalFlag); err != nil {
			reportRunError(stderr, m, err)
		}
	case *runOnly:
		if err := m.Run(); err != nil {
			reportRunError(stderr, m, err)
		}
	default:
		if err := debugger.RunCLI(dbg); err != nil {
			fmt.Fprintf(stderr, "comet2: %v\n", err)
			return 1
		}
	}

	if *countStep {
		fmt.Fprintf(stdout, "step count: %d\n", m.CPU.StepCount)
	}
	if *dumpState {
		df, err := os.Create("last_state.txt")
		if err == nil {
			defer df.Close()
			debugger.DumpState(df, m, 16)
		}
	}
	return 0
}

func reportRunError(stderr *os.File, m *vm.VM, err error) {
	var invalid *vm.InvalidOperationError
	if errors.As(err, &invalid) {
		fmt.Fprintln(stderr, err.Error())
		return
	}
	fmt.Fprintf(stderr, "comet2: %v\n", err)
}
