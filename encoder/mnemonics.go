// Package encoder turns a parsed CASL II program into COMET II object
// words: it resolves labels and literals (pass 2 of the assembler)
// and encodes each instruction according to the same opcode/form
// table the disasm package reads back.
package encoder

import "github.com/comet2/casl2comet/vm"

// ambiguous lists every mnemonic that has both an R1R2 form and an
// RAdrX form. CASL II does not write a distinct mnemonic for each;
// disambiguation is by operand shape: a second operand of the form
// GRn means the R1R2 form, anything else means the RAdrX form.
var ambiguous = map[string][2]vm.Opcode{
	"LD":   {vm.OpLD1, vm.OpLD2},
	"ADDA": {vm.OpADDA1, vm.OpADDA2},
	"SUBA": {vm.OpSUBA1, vm.OpSUBA2},
	"ADDL": {vm.OpADDL1, vm.OpADDL2},
	"SUBL": {vm.OpSUBL1, vm.OpSUBL2},
	"AND":  {vm.OpAND1, vm.OpAND2},
	"OR":   {vm.OpOR1, vm.OpOR2},
	"XOR":  {vm.OpXOR1, vm.OpXOR2},
	"CPA":  {vm.OpCPA1, vm.OpCPA2},
	"CPL":  {vm.OpCPL1, vm.OpCPL2},
}

// unambiguous lists every mnemonic with exactly one machine-op
// opcode.
var unambiguous = map[string]vm.Opcode{
	"NOP":   vm.OpNOP,
	"LAD":   vm.OpLAD,
	"SLA":   vm.OpSLA,
	"SRA":   vm.OpSRA,
	"SLL":   vm.OpSLL,
	"SRL":   vm.OpSRL,
	"JMI":   vm.OpJMI,
	"JNZ":   vm.OpJNZ,
	"JZE":   vm.OpJZE,
	"JUMP":  vm.OpJUMP,
	"JPL":   vm.OpJPL,
	"JOV":   vm.OpJOV,
	"PUSH":  vm.OpPUSH,
	"POP":   vm.OpPOP,
	"CALL":  vm.OpCALL,
	"RET":   vm.OpRET,
	"SVC":   vm.OpSVC,
	"IN":    vm.OpIN,
	"OUT":   vm.OpOUT,
	"RPUSH": vm.OpRPUSH,
	"RPOP":  vm.OpRPOP,
	"ST":    vm.OpST,
}

// IsArgRegister reports whether an operand token text names a
// general register (GR0-GR7), the discriminator CASL II uses to pick
// between an ambiguous mnemonic's two forms.
func IsArgRegister(arg string) bool {
	if len(arg) != 3 || arg[0] != 'G' || arg[1] != 'R' {
		return false
	}
	return arg[2] >= '0' && arg[2] <= '7'
}

// ResolveOpcode returns the opcode for mnemonic given whether its
// second operand is a register (only meaningful for ambiguous
// mnemonics).
func ResolveOpcode(mnemonic string, secondOperandIsRegister bool) (vm.Opcode, bool) {
	if pair, ok := ambiguous[mnemonic]; ok {
		if secondOperandIsRegister {
			return pair[0], true // R1R2 form
		}
		return pair[1], true // RAdrX form
	}
	if op, ok := unambiguous[mnemonic]; ok {
		return op, true
	}
	return 0, false
}

// IsMnemonic reports whether name is a recognized machine-instruction
// mnemonic (not a directive like START/END/DC/DS).
func IsMnemonic(name string) bool {
	if _, ok := ambiguous[name]; ok {
		return true
	}
	_, ok := unambiguous[name]
	return ok
}
