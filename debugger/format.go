package debugger

import (
	"fmt"
	"io"
	"strings"

	"github.com/comet2/casl2comet/vm"
)

// printStatus renders the register/flag panel used by the `p` command
// and after every `s` (step), matching the reference implementation's
// two-line-plus-two-row layout.
func printStatus(w io.Writer, m *vm.VM, lastInst string) {
	fmt.Fprintf(w, "PR  #%04x [ %-30s ]  STEP %d\n", m.CPU.PR, lastInst, m.CPU.StepCount)
	fmt.Fprintf(w, "SP  #%04x(%7d) FR(OF, SF, ZF)  %03s  (%7d)\n",
		m.CPU.SP(), int32(m.CPU.SP()), flagBits(m.CPU), int32(m.CPU.FR()))

	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			i := row*4 + col
			fmt.Fprintf(w, "GR%d #%04x(%7d) ", i, m.CPU.GR[i], vm.ToSigned(m.CPU.GR[i]))
		}
		fmt.Fprintln(w)
	}
}

func flagBits(c *vm.CPU) string {
	b := func(f bool) byte {
		if f {
			return '1'
		}
		return '0'
	}
	return string([]byte{b(c.OF), b(c.SF), b(c.ZF)})
}

// dumpMemory renders `lines` rows of 8 words starting at addr, each
// row showing the hex words and their printable-ASCII rendering,
// matching the reference implementation's dump_memory layout.
func dumpMemory(w io.Writer, m *vm.Memory, addr uint16, lines int) {
	a := addr
	for l := 0; l < lines; l++ {
		words := m.Slice(a, 8)
		var hexParts []string
		var ascii strings.Builder
		for _, v := range words {
			hexParts = append(hexParts, fmt.Sprintf("%04x", v))
			lo := byte(v & 0xff)
			if lo >= 0x20 && lo < 0x7f {
				ascii.WriteByte(lo)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Fprintf(w, "%04x: %-39s %-8s\n", a, strings.Join(hexParts, " "), ascii.String())
		a += 8
	}
}

// DumpState writes a last_state.txt-style report: step count,
// PR/SP/flags, every GR, and a memory dump from address 0. Exported
// for cmd/comet2's `-d` flag; dumpToFile is its internal alias used
// by the `df` REPL command.
func DumpState(w io.Writer, m *vm.VM, lines int) {
	dumpToFile(w, m, lines)
}

func dumpToFile(w io.Writer, m *vm.VM, lines int) {
	fmt.Fprintf(w, "Step count: %d\n", m.CPU.StepCount)
	fmt.Fprintf(w, "PR: #%04x\n", m.CPU.PR)
	fmt.Fprintf(w, "SP: #%04x\n", m.CPU.SP())
	fmt.Fprintf(w, "OF: %d\n", boolBit(m.CPU.OF))
	fmt.Fprintf(w, "SF: %d\n", boolBit(m.CPU.SF))
	fmt.Fprintf(w, "ZF: %d\n", boolBit(m.CPU.ZF))
	for i := 0; i < 8; i++ {
		fmt.Fprintf(w, "GR%d: #%04x\n", i, m.CPU.GR[i])
	}
	fmt.Fprintln(w, "Memory:")
	dumpMemory(w, m.Memory, 0, lines)
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
