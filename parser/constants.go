package parser

// ambiguousMnemonics lists mnemonics with both an R1R2 form (1 word)
// and an RAdrX form (2 words); which one applies is decided by
// whether the second operand is a register.
var ambiguousMnemonics = map[string]bool{
	"LD": true, "ADDA": true, "SUBA": true, "ADDL": true, "SUBL": true,
	"AND": true, "OR": true, "XOR": true, "CPA": true, "CPL": true,
}

// fixedSizeMnemonics gives the word count of every non-ambiguous
// machine instruction.
var fixedSizeMnemonics = map[string]int{
	"NOP": 1, "ST": 2, "LAD": 2,
	"SLA": 2, "SRA": 2, "SLL": 2, "SRL": 2,
	"JMI": 2, "JNZ": 2, "JZE": 2, "JUMP": 2, "JPL": 2, "JOV": 2,
	"PUSH": 2, "POP": 1,
	"CALL": 2, "RET": 1, "SVC": 2,
	"IN": 3, "OUT": 3,
	"RPUSH": 1, "RPOP": 1,
}

// isRegisterOperand reports whether an operand token names GR0-GR7.
func isRegisterOperand(arg string) bool {
	if len(arg) != 3 || arg[0] != 'G' || arg[1] != 'R' {
		return false
	}
	return arg[2] >= '0' && arg[2] <= '7'
}

// instructionSize returns the word size of a machine-instruction
// statement, resolving the R1R2-vs-RAdrX ambiguity from its operand
// shape.
func instructionSize(mnemonic string, args []string) (int, bool) {
	if ambiguousMnemonics[mnemonic] {
		if len(args) >= 2 && isRegisterOperand(args[1]) {
			return 1, true
		}
		return 2, true
	}
	if size, ok := fixedSizeMnemonics[mnemonic]; ok {
		return size, true
	}
	return 0, false
}

// IsMachineMnemonic reports whether name is a recognized machine
// instruction (not a directive).
func IsMachineMnemonic(name string) bool {
	if ambiguousMnemonics[name] {
		return true
	}
	_, ok := fixedSizeMnemonics[name]
	return ok
}
