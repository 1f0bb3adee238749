package vm

// Form describes an instruction's operand encoding, matching the
// forms used by the object format and the disassembler.
type Form int

const (
	FormNoArg  Form = iota // single word, no operand
	FormR                  // GRn only, packed into bits 4-7 of word 0
	FormR1R2               // GR r1, GR r2, packed into word 0
	FormAdrX               // word0 | word1=ADR, optional index GR in word0's low nibble
	FormRAdrX              // word0=GR r1, word1=ADR, optional index GR in word0's low nibble
	FormStrLen             // IN/OUT: word1=ADR of buffer, word2=ADR of length cell
	FormDC                 // raw data word(s), not a real instruction
)

// Opcode identifies a COMET II instruction by its high byte.
type Opcode uint8

const (
	OpNOP   Opcode = 0x00
	OpLD2   Opcode = 0x10 // LD r,adr,x  (RAdrX)
	OpST    Opcode = 0x11 // ST r,adr,x
	OpLAD   Opcode = 0x12 // LAD r,adr,x
	OpLD1   Opcode = 0x14 // LD r1,r2  (R1R2)
	OpADDA2 Opcode = 0x20 // ADDA r,adr,x
	OpSUBA2 Opcode = 0x21
	OpADDL2 Opcode = 0x22
	OpSUBL2 Opcode = 0x23
	OpADDA1 Opcode = 0x24 // ADDA r1,r2 (R1R2)
	OpSUBA1 Opcode = 0x25
	OpADDL1 Opcode = 0x26
	OpSUBL1 Opcode = 0x27
	OpAND2  Opcode = 0x30
	OpOR2   Opcode = 0x31
	OpXOR2  Opcode = 0x32
	OpAND1  Opcode = 0x34
	OpOR1   Opcode = 0x35
	OpXOR1  Opcode = 0x36
	OpCPA2  Opcode = 0x40
	OpCPL2  Opcode = 0x41
	OpCPA1  Opcode = 0x44
	OpCPL1  Opcode = 0x45
	OpSLA   Opcode = 0x50
	OpSRA   Opcode = 0x51
	OpSLL   Opcode = 0x52
	OpSRL   Opcode = 0x53
	OpJMI   Opcode = 0x61
	OpJNZ   Opcode = 0x62
	OpJZE   Opcode = 0x63
	OpJUMP  Opcode = 0x64
	OpJPL   Opcode = 0x65
	OpJOV   Opcode = 0x66
	OpPUSH  Opcode = 0x70
	OpPOP   Opcode = 0x71
	OpCALL  Opcode = 0x80
	OpRET   Opcode = 0x81
	OpSVC   Opcode = 0xF0
	OpIN    Opcode = 0x90
	OpOUT   Opcode = 0x91
	OpRPUSH Opcode = 0xA0
	OpRPOP  Opcode = 0xA1
)

// InstInfo describes one mnemonic entry: its opcode, canonical
// mnemonic text, and operand form. The table is shared by the
// assembler's encoder and the disassembler so the two always agree
// on word layout.
type InstInfo struct {
	Opcode  Opcode
	Mnemon  string
	Form    Form
	Size    int // words occupied, including the opcode word
}

// InstTable indexes InstInfo by opcode. Built once in init from
// instList below, mirroring the reference implementation's
// inst_table dict-of-opcode construction.
var InstTable = map[Opcode]InstInfo{}

var instList = []InstInfo{
	{OpNOP, "NOP", FormNoArg, 1},
	{OpLD2, "LD", FormRAdrX, 2},
	{OpST, "ST", FormRAdrX, 2},
	{OpLAD, "LAD", FormRAdrX, 2},
	{OpLD1, "LD", FormR1R2, 1},
	{OpADDA2, "ADDA", FormRAdrX, 2},
	{OpSUBA2, "SUBA", FormRAdrX, 2},
	{OpADDL2, "ADDL", FormRAdrX, 2},
	{OpSUBL2, "SUBL", FormRAdrX, 2},
	{OpADDA1, "ADDA", FormR1R2, 1},
	{OpSUBA1, "SUBA", FormR1R2, 1},
	{OpADDL1, "ADDL", FormR1R2, 1},
	{OpSUBL1, "SUBL", FormR1R2, 1},
	{OpAND2, "AND", FormRAdrX, 2},
	{OpOR2, "OR", FormRAdrX, 2},
	{OpXOR2, "XOR", FormRAdrX, 2},
	{OpAND1, "AND", FormR1R2, 1},
	{OpOR1, "OR", FormR1R2, 1},
	{OpXOR1, "XOR", FormR1R2, 1},
	{OpCPA2, "CPA", FormRAdrX, 2},
	{OpCPL2, "CPL", FormRAdrX, 2},
	{OpCPA1, "CPA", FormR1R2, 1},
	{OpCPL1, "CPL", FormR1R2, 1},
	{OpSLA, "SLA", FormRAdrX, 2},
	{OpSRA, "SRA", FormRAdrX, 2},
	{OpSLL, "SLL", FormRAdrX, 2},
	{OpSRL, "SRL", FormRAdrX, 2},
	{OpJMI, "JMI", FormAdrX, 2},
	{OpJNZ, "JNZ", FormAdrX, 2},
	{OpJZE, "JZE", FormAdrX, 2},
	{OpJUMP, "JUMP", FormAdrX, 2},
	{OpJPL, "JPL", FormAdrX, 2},
	{OpJOV, "JOV", FormAdrX, 2},
	{OpPUSH, "PUSH", FormAdrX, 2},
	{OpPOP, "POP", FormR, 1},
	{OpCALL, "CALL", FormAdrX, 2},
	{OpRET, "RET", FormNoArg, 1},
	{OpSVC, "SVC", FormAdrX, 2},
	{OpIN, "IN", FormStrLen, 3},
	{OpOUT, "OUT", FormStrLen, 3},
	{OpRPUSH, "RPUSH", FormNoArg, 1},
	{OpRPOP, "RPOP", FormNoArg, 1},
}

func init() {
	for _, inst := range instList {
		InstTable[inst.Opcode] = inst
	}
}

// Lookup returns the InstInfo for the high byte of w, and whether the
// opcode is recognized.
func Lookup(w uint16) (InstInfo, bool) {
	op := Opcode((w >> 8) & 0xff)
	info, ok := InstTable[op]
	return info, ok
}
