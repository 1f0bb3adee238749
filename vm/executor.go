package vm

import (
	"bufio"
	"fmt"
	"io"
)

// OutcomeKind distinguishes the three ways a single instruction can
// affect control flow. This is the explicit StepOutcome redesign:
// the reference implementation raises a Jump exception to alter PR
// and relies on a bare return to mean "advance PR by the instruction
// size"; panics are never used here to carry control flow.
type OutcomeKind int

const (
	Continue OutcomeKind = iota // Step advances PR by the instruction's size
	Jumped                      // PR was set explicitly to Addr
	Halted                      // machine should stop running
)

// StepOutcome is returned by every instruction's execute function.
type StepOutcome struct {
	Kind OutcomeKind
	Addr uint16 // meaningful only when Kind == Jumped
}

// InvalidOperationError reports a fetch of an unrecognized opcode, at
// the exact address it occurred, matching the reference
// implementation's InvalidOperation condition.
type InvalidOperationError struct {
	Addr uint16
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("Invalid operation is found at #%04x.", e.Addr)
}

// VM composes the COMET II CPU and memory into a runnable machine.
// Output and input are injected via io.Writer/io.Reader, never read
// from package-level globals, so multiple VM instances never race on
// shared state (the same discipline the teacher's executor applies to
// its per-instance stdinReader).
type VM struct {
	CPU    *CPU
	Memory *Memory

	In     *bufio.Reader
	Out    io.Writer
	ErrOut io.Writer

	CallLevel int
	Halted    bool

	Breakpoints map[uint16]bool
}

// NewVM builds a VM wired to stdin/stdout/stderr-shaped readers and
// writers supplied by the caller (cmd/comet2 wires the real
// os.Stdin/Stdout/Stderr; tests wire in-memory buffers).
func NewVM(in io.Reader, out, errOut io.Writer) *VM {
	return &VM{
		CPU:         NewCPU(),
		Memory:      NewMemory(),
		In:          bufio.NewReader(in),
		Out:         out,
		ErrOut:      errOut,
		Breakpoints: make(map[uint16]bool),
	}
}

// Reset restores CPU and memory to their initial state and clears
// run-time bookkeeping (call depth, halted flag). Breakpoints survive
// a reset, matching the debugger's expectation that `r` can be issued
// repeatedly without losing breakpoints.
func (vm *VM) Reset() {
	vm.CPU.Reset()
	vm.Memory.Reset()
	vm.CallLevel = 0
	vm.Halted = false
}

// Load places a program image at address 0 and sets PR to entry.
func (vm *VM) Load(entry uint16, image []uint16) error {
	if err := vm.Memory.LoadImage(0, image); err != nil {
		return err
	}
	vm.CPU.PR = entry
	return nil
}

// Step fetches, decodes, and executes exactly one instruction,
// advancing PR according to the instruction's StepOutcome. Returns an
// *InvalidOperationError if the fetched opcode is unrecognized.
func (vm *VM) Step() error {
	addr := vm.CPU.PR
	w := vm.Memory.Read(addr)
	info, ok := Lookup(w)
	if !ok {
		return &InvalidOperationError{Addr: addr}
	}

	outcome, err := vm.execute(addr, w, info)
	if err != nil {
		return err
	}

	vm.CPU.StepCount++

	switch outcome.Kind {
	case Continue:
		vm.CPU.PR = addr + uint16(info.Size)
	case Jumped:
		vm.CPU.PR = outcome.Addr
	case Halted:
		vm.Halted = true
	}
	return nil
}

// Run executes instructions until the machine halts, a breakpoint is
// hit, or an error occurs. The breakpoint check runs before every
// step, including the first: if PR already sits on a breakpoint, Run
// executes nothing and returns immediately.
func (vm *VM) Run() error {
	for !vm.Halted {
		if vm.Breakpoints[vm.CPU.PR] {
			return nil
		}
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}
