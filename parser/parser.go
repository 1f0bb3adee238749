package parser

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/comet2/casl2comet/vm"
)

// splitLine separates one raw source line into an optional label, the
// mnemonic/directive name, and its raw operand texts, discarding any
// trailing ';' comment. A label is recognized only when the line does
// not begin with whitespace, matching CASL II's column-sensitive
// label field.
func splitLine(line string) (label, op string, args []string) {
	line = stripComment(line)
	if strings.TrimSpace(line) == "" {
		return "", "", nil
	}

	hasLeadingSpace := line[0] == ' ' || line[0] == '\t'
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", nil
	}

	rest := fields
	if !hasLeadingSpace {
		label = fields[0]
		rest = fields[1:]
	}
	if len(rest) == 0 {
		return label, "", nil
	}
	op = rest[0]

	// Re-extract the operand text verbatim (not field-split) so that
	// quoted strings containing spaces survive intact.
	// The search starts after the label so a label containing the
	// mnemonic text is not mistaken for it.
	opIdx := strings.Index(line[len(label):], op)
	operandText := ""
	if opIdx >= 0 {
		operandText = line[len(label)+opIdx+len(op):]
	}
	args = splitOperands(operandText)
	return label, op, args
}

// stripComment removes a trailing ';' comment, honoring single-quoted
// strings so a ';' inside a DC string literal is not mistaken for one.
func stripComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\'':
			inString = !inString
		case ';':
			if !inString {
				return line[:i]
			}
		}
	}
	return line
}

// splitOperands splits an operand list on top-level commas, leaving
// quoted strings and their embedded commas intact.
func splitOperands(text string) []string {
	var out []string
	var cur strings.Builder
	inString := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '\'':
			inString = !inString
			cur.WriteByte(ch)
		case ch == ',' && !inString:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if strings.TrimSpace(cur.String()) != "" || len(out) > 0 {
		out = append(out, strings.TrimSpace(cur.String()))
	}
	return out
}

type parseState struct {
	prog        *Program
	errs        *ErrorList
	addr        uint16
	scope       string
	scopeOpen   bool
	literalNum  int
	literalsQ   []literalEntry
	firstScope  string
	sawFirst    bool
}

type literalEntry struct {
	label string
	line  int
	raw   string
}

// Parse runs pass 1 over src: it splits lines, tracks START/END
// scoping, assigns addresses, registers every label, and queues
// =literal operands for emission at the end of their region. Label
// and literal resolution into final object words is pass 2, done by
// the encoder package against the returned Program.
func Parse(filename, src string) (*Program, *ErrorList) {
	st := &parseState{
		prog: &Program{Filename: filename, Symbols: NewSymbolTable()},
		errs: &ErrorList{},
	}

	scanner := bufio.NewScanner(strings.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		st.processLine(lineNo, line)
	}

	if st.scopeOpen {
		st.errs.AddError(NewError(Position{filename, lineNo}, ErrorSyntax, "missing END for program "+st.scope))
	}

	if st.sawFirst {
		if addr, ok := st.prog.Symbols.Resolve("", st.firstScope); ok {
			st.prog.EntryAddr = addr
			st.prog.HasEntry = true
		}
	}

	return st.prog, st.errs
}

func (st *parseState) processLine(lineNo int, line string) {
	label, op, args := splitLine(line)
	if op == "" {
		return
	}
	pos := Position{st.prog.Filename, lineNo}

	switch op {
	case "START":
		st.handleSTART(pos, label, args, line)
	case "END":
		st.handleEND(pos, line)
	case "DC":
		st.handleDC(pos, label, args, line, lineNo)
	case "DS":
		st.handleDS(pos, label, args, line, lineNo)
	default:
		if !IsMachineMnemonic(op) {
			st.errs.AddError(NewErrorWithContext(pos, ErrorInvalidInstruction,
				fmt.Sprintf("invalid operation %q", op), line))
			return
		}
		st.handleInstruction(pos, label, op, args, line, lineNo)
	}
}

func (st *parseState) handleSTART(pos Position, label string, args []string, line string) {
	if st.scopeOpen {
		st.errs.AddError(NewErrorWithContext(pos, ErrorSyntax, "nested START is not allowed", line))
		return
	}
	if label == "" {
		st.errs.AddError(NewErrorWithContext(pos, ErrorSyntax, "START requires a label", line))
		return
	}
	if err := st.prog.Symbols.Define("."+label, st.addr, pos.Line); err != nil {
		st.errs.AddError(NewErrorWithContext(pos, ErrorDuplicateLabel, err.Error(), line))
	}
	if len(args) > 0 && args[0] != "" {
		st.prog.Symbols.SetGoto("."+label, label+"."+args[0])
	}
	if !st.sawFirst {
		st.firstScope = label
		st.sawFirst = true
	}
	st.scope = label
	st.scopeOpen = true
}

func (st *parseState) handleEND(pos Position, line string) {
	if !st.scopeOpen {
		st.errs.AddError(NewErrorWithContext(pos, ErrorSyntax, "END without matching START", line))
		return
	}
	st.flushLiterals()
	st.scope = ""
	st.scopeOpen = false
}

func (st *parseState) flushLiterals() {
	for _, lit := range st.literalsQ {
		values := parseLiteralValue(lit.raw)
		sym := &Stmt{
			Kind:  StmtLiteral,
			Label: lit.label,
			Args:  []string{lit.raw},
			Line:  lit.line,
			Addr:  st.addr,
			Size:  len(values),
			Scope: st.scope,
		}
		st.prog.Stmts = append(st.prog.Stmts, sym)
		_ = st.prog.Symbols.Define("."+lit.label, st.addr, lit.line)
		st.addr += uint16(len(values))
	}
	st.literalsQ = nil
}

func (st *parseState) qualify(label string) string {
	if st.scope == "" {
		return "." + label
	}
	return st.scope + "." + label
}

func (st *parseState) handleDC(pos Position, label string, args []string, line string, lineNo int) {
	if !st.scopeOpen {
		st.errs.AddError(NewErrorWithContext(pos, ErrorSyntax, "DC outside of a START/END region", line))
		return
	}
	size := 0
	for _, a := range args {
		size += len(parseLiteralValue(a))
	}
	if label != "" {
		if err := st.prog.Symbols.Define(st.qualify(label), st.addr, lineNo); err != nil {
			st.errs.AddError(NewErrorWithContext(pos, ErrorDuplicateLabel, err.Error(), line))
		}
	}
	st.prog.Stmts = append(st.prog.Stmts, &Stmt{
		Kind: StmtDC, Label: label, Op: "DC", Args: args,
		Line: lineNo, Src: line, Addr: st.addr, Size: size, Scope: st.scope,
	})
	st.addr += uint16(size)
}

func (st *parseState) handleDS(pos Position, label string, args []string, line string, lineNo int) {
	if !st.scopeOpen {
		st.errs.AddError(NewErrorWithContext(pos, ErrorSyntax, "DS outside of a START/END region", line))
		return
	}
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || n < 0 {
			st.errs.AddError(NewErrorWithContext(pos, ErrorInvalidOperand, "DS operand must be a non-negative integer", line))
		} else {
			count = n
		}
	}
	if label != "" {
		if err := st.prog.Symbols.Define(st.qualify(label), st.addr, lineNo); err != nil {
			st.errs.AddError(NewErrorWithContext(pos, ErrorDuplicateLabel, err.Error(), line))
		}
	}
	st.prog.Stmts = append(st.prog.Stmts, &Stmt{
		Kind: StmtDS, Label: label, Op: "DS", Args: args,
		Line: lineNo, Src: line, Addr: st.addr, Size: count, Scope: st.scope,
	})
	st.addr += uint16(count)
}

func (st *parseState) handleInstruction(pos Position, label, op string, args []string, line string, lineNo int) {
	if !st.scopeOpen {
		st.errs.AddError(NewErrorWithContext(pos, ErrorSyntax, "instruction outside of a START/END region", line))
		return
	}
	size, ok := instructionSize(op, args)
	if !ok {
		st.errs.AddError(NewErrorWithContext(pos, ErrorInvalidInstruction, fmt.Sprintf("invalid operation %q", op), line))
		return
	}
	if label != "" {
		if err := st.prog.Symbols.Define(st.qualify(label), st.addr, lineNo); err != nil {
			st.errs.AddError(NewErrorWithContext(pos, ErrorDuplicateLabel, err.Error(), line))
		}
	}

	resolvedArgs := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, "=") {
			litName := st.nextLiteralName()
			st.literalsQ = append(st.literalsQ, literalEntry{label: litName, line: lineNo, raw: a[1:]})
			resolvedArgs[i] = litName
		} else {
			resolvedArgs[i] = a
		}
	}

	st.prog.Stmts = append(st.prog.Stmts, &Stmt{
		Kind: StmtMachine, Label: label, Op: op, Args: resolvedArgs,
		Line: lineNo, Src: line, Addr: st.addr, Size: size, Scope: st.scope,
	})
	st.addr += uint16(size)
}

func (st *parseState) nextLiteralName() string {
	st.literalNum++
	return fmt.Sprintf("_L%04d", st.literalNum)
}

// parseLiteralValue turns one DC/literal operand token into the word
// values it contributes: a #hex or decimal token contributes one
// word, a 'string' token contributes one word per character.
func parseLiteralValue(raw string) []uint16 {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "#"):
		v, err := strconv.ParseUint(raw[1:], 16, 16)
		if err != nil {
			return []uint16{0}
		}
		return []uint16{uint16(v)}
	case strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") && len(raw) >= 2:
		content := raw[1 : len(raw)-1]
		out := make([]uint16, 0, len(content))
		for _, ch := range content {
			out = append(out, uint16(ch))
		}
		if len(out) == 0 {
			return []uint16{0}
		}
		return out
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return []uint16{0}
		}
		return []uint16{vm.ToUnsigned(int32(n))}
	}
}
