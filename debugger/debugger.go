// Package debugger implements the interactive COMET II REPL: a small
// command set over a running vm.VM, plus an optional tcell/tview
// full-screen mode.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comet2/casl2comet/disasm"
	"github.com/comet2/casl2comet/vm"
)

// Prompt is written before each command read, to Err (stderr),
// exactly as the reference implementation's wait_for_command does.
const Prompt = "pycomet2> "

// Debugger wraps a VM with breakpoint tracking and the last command
// line entered, driving the REPL described by the specification.
type Debugger struct {
	VM   *vm.VM
	Bps  *BreakpointManager
	In   *bufio.Reader
	Out  io.Writer
	Err  io.Writer

	LastCommand string
	lastInst    string
}

// NewDebugger builds a Debugger around an already-loaded VM.
func NewDebugger(m *vm.VM, in io.Reader, out, errOut io.Writer) *Debugger {
	return &Debugger{
		VM:  m,
		Bps: NewBreakpointManager(),
		In:  bufio.NewReader(in),
		Out: out,
		Err: errOut,
	}
}

// ResolveAddress parses an ADDR token: "#hhhh" hex or a plain decimal
// number. The specification's debugger has no symbolic source-level
// address resolution (labels are already fully encoded as addresses
// in the object file by the time comet2 loads it).
func ResolveAddress(text string) (uint16, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "#") {
		v, err := strconv.ParseUint(text[1:], 16, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid address %q", text)
		}
		return uint16(v), nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", text)
	}
	return uint16(v), nil
}

// step executes one instruction and records its disassembly text for
// the subsequent status line, matching the REPL's `s` command.
func (d *Debugger) step() error {
	if d.VM.Halted {
		return nil
	}
	line := disasm.Disassemble(d.VM.Memory, d.VM.CPU.PR, 1)
	if len(line) > 0 {
		d.lastInst = line[0].Text
	}
	return d.VM.Step()
}

// runUntilStopOrBreak runs the VM until it halts, hits a set
// breakpoint, or an error (including InvalidOperation) occurs. The
// breakpoint check runs before every step, including the first, so
// running with PR already on a breakpoint executes nothing.
func (d *Debugger) runUntilStopOrBreak() error {
	for !d.VM.Halted {
		if d.Bps.Has(d.VM.CPU.PR) {
			return nil
		}
		if err := d.step(); err != nil {
			return err
		}
	}
	return nil
}
