package parser

// StmtKind classifies one parsed source line.
type StmtKind int

const (
	StmtMachine StmtKind = iota // a machine instruction mnemonic
	StmtStart                   // START directive
	StmtEnd                     // END directive
	StmtDC                      // DC directive
	StmtDS                      // DS directive
	StmtLiteral                 // synthesized =literal DC, appended by the parser at END
)

// Stmt is one assembled line: its label (already bare, not yet
// scope-qualified — qualification happens as it is registered), its
// mnemonic or directive name, its raw operand texts, and its assigned
// address. DC operands may expand to more than one word (a string
// literal contributes one word per character), so Size is computed
// once the operands are known rather than assumed from the mnemonic
// alone.
type Stmt struct {
	Kind    StmtKind
	Label   string
	Op      string
	Args    []string
	Line    int
	Src     string
	Addr    uint16
	Size    int
	Scope   string // the scope this statement was assembled under
}

// Program is the result of pass 1: a flat list of statements with
// addresses assigned and every label registered in Symbols. Pass 2
// (performed by the encoder package) resolves label/literal operands
// against Symbols and emits object words.
type Program struct {
	Filename string
	Stmts    []*Stmt
	Symbols  *SymbolTable

	// EntryAddr is the address the very first START's label resolves
	// to (its entry operand's address when it has one), i.e. the
	// object file's entry point.
	EntryAddr uint16
	HasEntry  bool
}
