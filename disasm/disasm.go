// Package disasm renders COMET II memory as assembly text, used by
// the debugger's `di` command and the reference-format disassembly
// dump.
package disasm

import (
	"fmt"

	"github.com/comet2/casl2comet/vm"
)

// WordReader is the minimal memory interface the disassembler needs;
// *vm.Memory satisfies it.
type WordReader interface {
	Read(addr uint16) uint16
}

// Line is one row of disassembly output: an address and its rendered
// text. Continuation rows for multi-word instructions carry an empty
// Text, matching the reference implementation's blank second line.
type Line struct {
	Addr uint16
	Text string
}

// Disassemble renders `count` instructions starting at addr.
func Disassemble(m WordReader, addr uint16, count int) []Line {
	lines := make([]Line, 0, count)
	a := addr
	for i := 0; i < count; i++ {
		w := m.Read(a)
		info, ok := vm.Lookup(w)
		if !ok {
			lines = append(lines, Line{Addr: a, Text: fmt.Sprintf("%-8s#%04x", "DC", w)})
			a++
			continue
		}

		text, size := render(m, a, w, info)
		lines = append(lines, Line{Addr: a, Text: text})
		for j := 1; j < size; j++ {
			lines = append(lines, Line{Addr: a + uint16(j), Text: ""})
		}
		a += uint16(size)
	}
	return lines
}

func render(m WordReader, addr, w0 uint16, info vm.InstInfo) (string, int) {
	r := int((w0 >> 4) & 0x0f)
	x := int(w0 & 0x0f)

	switch info.Form {
	case vm.FormNoArg:
		return fmt.Sprintf("%-8s", info.Mnemon), info.Size

	case vm.FormR:
		return fmt.Sprintf("%-8sGR%1d", info.Mnemon, r), info.Size

	case vm.FormR1R2:
		return fmt.Sprintf("%-8sGR%1d, GR%1d", info.Mnemon, r, x), info.Size

	case vm.FormAdrX:
		adr := m.Read(addr + 1)
		if x == 0 {
			return fmt.Sprintf("%-8s#%04x", info.Mnemon, adr), info.Size
		}
		return fmt.Sprintf("%-8s#%04x, GR%1d", info.Mnemon, adr, x), info.Size

	case vm.FormRAdrX:
		adr := m.Read(addr + 1)
		if x == 0 {
			return fmt.Sprintf("%-8sGR%1d, #%04x", info.Mnemon, r, adr), info.Size
		}
		return fmt.Sprintf("%-8sGR%1d, #%04x, GR%1d", info.Mnemon, r, adr, x), info.Size

	case vm.FormStrLen:
		buf := m.Read(addr + 1)
		ln := m.Read(addr + 2)
		return fmt.Sprintf("%-8s#%04x, #%04x", info.Mnemon, buf, ln), info.Size
	}

	return fmt.Sprintf("%-8s#%04x", "DC", w0), 1
}
