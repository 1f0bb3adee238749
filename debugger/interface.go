package debugger

import (
	"errors"
	"fmt"
	"io"

	"github.com/comet2/casl2comet/vm"
)

// RunCLI drives the line-oriented REPL described by the
// specification: print Prompt to Err, read one command, execute it,
// repeat until `q` or EOF. An InvalidOperationError from the VM is
// reported and the machine's state is dumped, but the REPL itself
// keeps running so the user can inspect what happened.
func RunCLI(d *Debugger) error {
	for {
		fmt.Fprint(d.Err, Prompt)
		line, err := d.In.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		quit, runErr := d.Execute(trimNewline(line))
		if quit {
			return nil
		}
		if runErr != nil {
			var invalid *vm.InvalidOperationError
			if errors.As(runErr, &invalid) {
				fmt.Fprintln(d.Out, runErr.Error())
				dumpToFile(d.Out, d.VM, 16)
				continue
			}
			return runErr
		}
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
