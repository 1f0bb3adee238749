package debugger

import (
	"fmt"
	"os"
	"strings"

	"github.com/comet2/casl2comet/disasm"
)

// Execute dispatches one REPL command line. It returns quit=true when
// the command was `q`, and an error when the VM hit an invalid
// opcode or another unrecoverable condition while running.
func (d *Debugger) Execute(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	d.LastCommand = line
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "b":
		return false, d.cmdBreak(args)
	case "d":
		return false, d.cmdDelete(args)
	case "di":
		return false, d.cmdDisassemble(args)
	case "du":
		return false, d.cmdDump(args)
	case "df":
		return false, d.cmdDumpFile(args)
	case "h":
		d.cmdHelp()
		return false, nil
	case "i":
		d.cmdInfo()
		return false, nil
	case "j":
		return false, d.cmdJump(args)
	case "m":
		return false, d.cmdMemory(args)
	case "p":
		printStatus(d.Out, d.VM, d.lastInst)
		return false, nil
	case "r":
		return false, d.runUntilStopOrBreak()
	case "s":
		if err := d.step(); err != nil {
			return false, err
		}
		printStatus(d.Out, d.VM, d.lastInst)
		return false, nil
	case "st":
		dumpMemory(d.Out, d.VM.Memory, d.VM.CPU.SP(), 16)
		return false, nil
	default:
		fmt.Fprintf(d.Out, "Invalid arguments\n")
		return false, nil
	}
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	addr, err := ResolveAddress(args[0])
	if err != nil {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	if !d.Bps.Add(addr) {
		fmt.Fprintf(d.Out, "#%04x is already set.\n", addr)
	}
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	n, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintln(d.Out, "Invalid number is specified.")
		return nil
	}
	addr, ok := d.Bps.DeleteAt(n)
	if !ok {
		fmt.Fprintln(d.Out, "Invalid number is specified.")
		return nil
	}
	fmt.Fprintf(d.Out, "#%04x is removed.\n", addr)
	return nil
}

func parseIndex(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func (d *Debugger) cmdDisassemble(args []string) error {
	addr := d.VM.CPU.PR
	count := 16
	if len(args) >= 1 {
		a, err := ResolveAddress(args[0])
		if err != nil {
			fmt.Fprintln(d.Out, "Invalid arguments")
			return nil
		}
		addr = a
	}
	if len(args) >= 2 {
		n, err := parseIndex(args[1])
		if err == nil && n > 0 {
			count = n
		}
	}
	for _, l := range disasm.Disassemble(d.VM.Memory, addr, count) {
		w := d.VM.Memory.Read(l.Addr)
		fmt.Fprintf(d.Out, "#%04x\t#%04x\t%s\n", l.Addr, w, l.Text)
	}
	return nil
}

func (d *Debugger) cmdDump(args []string) error {
	addr := uint16(0)
	lines := 16
	if len(args) >= 1 {
		a, err := ResolveAddress(args[0])
		if err != nil {
			fmt.Fprintln(d.Out, "Invalid arguments")
			return nil
		}
		addr = a
	}
	if len(args) >= 2 {
		n, err := parseIndex(args[1])
		if err == nil && n > 0 {
			lines = n
		}
	}
	dumpMemory(d.Out, d.VM.Memory, addr, lines)
	return nil
}

func (d *Debugger) cmdDumpFile(args []string) error {
	filename := "last_state.txt"
	if len(args) >= 1 {
		filename = args[0]
	}
	f, err := os.Create(filename) // #nosec G304 -- user-specified dump path
	if err != nil {
		fmt.Fprintf(d.Out, "could not create %s: %v\n", filename, err)
		return nil
	}
	defer f.Close()
	dumpToFile(f, d.VM, 16)
	return nil
}

func (d *Debugger) cmdInfo() {
	bps := d.Bps.List()
	if len(bps) == 0 {
		fmt.Fprintln(d.Out, "No break points.")
		return
	}
	for i, addr := range bps {
		fmt.Fprintf(d.Out, "%d: #%04x\n", i, addr)
	}
}

func (d *Debugger) cmdJump(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	addr, err := ResolveAddress(args[0])
	if err != nil {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	d.VM.CPU.PR = addr
	printStatus(d.Out, d.VM, d.lastInst)
	return nil
}

func (d *Debugger) cmdMemory(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	addr, err := ResolveAddress(args[0])
	if err != nil {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	val, err := ResolveAddress(args[1])
	if err != nil {
		fmt.Fprintln(d.Out, "Invalid arguments")
		return nil
	}
	d.VM.Memory.Write(addr, val)
	return nil
}

func (d *Debugger) cmdHelp() {
	fmt.Fprint(d.Out, helpText)
}

const helpText = `b ADDR        set a break point at ADDR
d N           delete break point number N
di [ADDR [N]] disassemble N instructions from ADDR
du [ADDR [N]] dump N lines of memory from ADDR
df [FILE]     dump machine state to FILE (default last_state.txt)
h             show this help
i             list break points
j ADDR        jump to ADDR
m ADDR VALUE  write VALUE to memory at ADDR
p             print registers and flags
r             run until a break point or halt
s             step one instruction
st            dump the stack
q             quit
`
