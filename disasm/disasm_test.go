package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comet2/casl2comet/vm"
)

func TestDisassembleAdrXNoIndex(t *testing.T) {
	m := vm.NewMemory()
	m.Write(0, uint16(vm.OpJUMP)<<8)
	m.Write(1, 0x1234)
	lines := Disassemble(m, 0, 1)
	require.Len(t, lines, 2)
	assert.Equal(t, "JUMP    #1234", lines[0].Text)
	assert.Equal(t, "", lines[1].Text)
	assert.Equal(t, uint16(1), lines[1].Addr)
}

func TestDisassembleRAdrXWithIndex(t *testing.T) {
	m := vm.NewMemory()
	m.Write(0, uint16(vm.OpLD2)<<8|uint16(1)<<4|2)
	m.Write(1, 0x0020)
	lines := Disassemble(m, 0, 1)
	assert.Equal(t, "LD      GR1, #0020, GR2", lines[0].Text)
}

func TestDisassembleUnknownOpcodeFallsBackToDC(t *testing.T) {
	m := vm.NewMemory()
	m.Write(0, 0xFFFF)
	lines := Disassemble(m, 0, 1)
	assert.Equal(t, "DC      #ffff", lines[0].Text)
}

func TestDisassembleR1R2(t *testing.T) {
	m := vm.NewMemory()
	m.Write(0, uint16(vm.OpLD1)<<8|uint16(3)<<4|4)
	lines := Disassemble(m, 0, 1)
	assert.Equal(t, "LD      GR3, GR4", lines[0].Text)
}
