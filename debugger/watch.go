package debugger

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comet2/casl2comet/vm"
)

// watchToken renders one `-w` token against the current machine
// state, following the variable grammar the reference
// implementation's StatusMonitor uses: PR, OF/SF/ZF, GRn, or a bare
// address (hex with '#' or decimal) treated as a memory cell.
func watchToken(m *vm.VM, token string, decimal bool) string {
	switch token {
	case "PR":
		return fmt.Sprintf("PR=#%04x", m.CPU.PR)
	case "OF":
		return fmt.Sprintf("OF=%d", boolBit(m.CPU.OF))
	case "SF":
		return fmt.Sprintf("SF=%d", boolBit(m.CPU.SF))
	case "ZF":
		return fmt.Sprintf("ZF=%d", boolBit(m.CPU.ZF))
	}

	if len(token) == 3 && token[0] == 'G' && token[1] == 'R' && token[2] >= '0' && token[2] <= '8' {
		r := int(token[2] - '0')
		if decimal {
			return fmt.Sprintf("%s=%d", token, vm.ToSigned(m.CPU.GR[r]))
		}
		return fmt.Sprintf("%s=#%04x", token, m.CPU.GR[r])
	}

	if addr, ok := parseWatchAddress(token); ok {
		v := m.Memory.Read(addr)
		if decimal {
			return fmt.Sprintf("#%04x=%d", addr, v)
		}
		return fmt.Sprintf("#%04x=#%04x", addr, v)
	}

	return token + "=?"
}

func parseWatchAddress(token string) (uint16, bool) {
	if strings.HasPrefix(token, "#") {
		v, err := strconv.ParseUint(token[1:], 16, 16)
		if err != nil {
			return 0, false
		}
		return uint16(v), true
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// RunWatch executes the program to completion (or until a breakpoint
// or invalid opcode), printing one status line per step before it
// executes, as comet2's `-w vars` flag requests. The breakpoint check
// runs before every step, including the first.
func RunWatch(d *Debugger, out io.Writer, vars []string, decimal bool) error {
	for !d.VM.Halted {
		if d.Bps.Has(d.VM.CPU.PR) {
			return nil
		}

		parts := make([]string, len(vars))
		for i, v := range vars {
			parts[i] = watchToken(d.VM, v, decimal)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))

		if err := d.step(); err != nil {
			return err
		}
	}
	return nil
}
