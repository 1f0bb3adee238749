package vm

import (
	"fmt"
	"strings"
)

// maxInputLine caps the number of characters IN stores, matching the
// reference implementation's 256-character truncation.
const maxInputLine = 256

// execIN implements IN buf,len: prompts on ErrOut, reads one line
// from In, truncates it to maxInputLine characters, writes its
// length to mem[lenAddr] and its characters (one per word) starting
// at mem[bufAddr]. It does not clear any previously-occupied buffer
// words beyond the new length.
func (vm *VM) execIN(addr uint16) (StepOutcome, error) {
	bufAddr, lenAddr := vm.operandsStrLen(addr)

	if vm.ErrOut != nil {
		fmt.Fprint(vm.ErrOut, "-> ")
	}

	line, err := vm.In.ReadString('\n')
	if err != nil && line == "" {
		line = ""
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) > maxInputLine {
		line = line[:maxInputLine]
	}

	vm.Memory.Write(lenAddr, uint16(len(line)))
	a := bufAddr
	for _, ch := range line {
		vm.Memory.Write(a, uint16(ch))
		a++
	}
	return StepOutcome{Kind: Continue}, nil
}

// execOUT implements OUT buf,len: reads the length from mem[lenAddr]
// and prints that many characters starting at mem[bufAddr] to Out,
// followed by a newline.
func (vm *VM) execOUT(addr uint16) (StepOutcome, error) {
	bufAddr, lenAddr := vm.operandsStrLen(addr)
	length := vm.Memory.Read(lenAddr)

	var sb strings.Builder
	a := bufAddr
	for i := uint16(0); i < length; i++ {
		sb.WriteRune(rune(vm.Memory.Read(a)))
		a++
	}

	if vm.Out != nil {
		fmt.Fprintln(vm.Out, sb.String())
	}
	return StepOutcome{Kind: Continue}, nil
}
