package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comet2/casl2comet/parser"
	"github.com/comet2/casl2comet/vm"
)

// EncodeProgram is pass 2: it walks a parsed Program's statements,
// resolves every label and literal operand against its symbol table,
// and returns the entry address and the flat word image ready to be
// written as an object file.
func EncodeProgram(prog *parser.Program) (entry uint16, image []uint16, err error) {
	size := uint16(0)
	for _, s := range prog.Stmts {
		end := s.Addr + uint16(s.Size)
		if end > size {
			size = end
		}
	}
	image = make([]uint16, size)

	for _, s := range prog.Stmts {
		switch s.Kind {
		case parser.StmtMachine:
			if err := encodeMachine(prog, s, image); err != nil {
				return 0, nil, fmt.Errorf("%w\n    %s", err, s.Src)
			}
		case parser.StmtDC:
			encodeDC(s, image)
		case parser.StmtDS:
			// DS reserves zeroed words; image is already zero-valued.
		case parser.StmtLiteral:
			encodeDC(s, image)
		}
	}

	if prog.HasEntry {
		entry = prog.EntryAddr
	}
	return entry, image, nil
}

func encodeDC(s *parser.Stmt, image []uint16) {
	addr := s.Addr
	for _, raw := range s.Args {
		for _, v := range parseDCValue(raw) {
			if int(addr) < len(image) {
				image[addr] = v
			}
			addr++
		}
	}
}

// parseDCValue mirrors parser.parseLiteralValue for the DC/literal
// operand grammar (hex, decimal, string). It is duplicated rather
// than imported because parser.Stmt already stores raw operand text
// and pass 2 must not need the parser's internal state.
func parseDCValue(raw string) []uint16 {
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

func encodeMachine(prog *parser.Program, s *parser.Stmt, image []uint16) error {
	secondIsReg := len(s.Args) >= 2 && IsArgRegister(s.Args[1])
	opcode, ok := ResolveOpcode(s.Op, secondIsReg)
	if !ok {
		return fmt.Errorf("line %d: unknown mnemonic %q", s.Line, s.Op)
	}
	info := vm.InstTable[opcode]

	w0 := uint16(opcode) << 8

	switch info.Form {
	case vm.FormNoArg:
		image[s.Addr] = w0

	case vm.FormR:
		r, err := registerIndex(s.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		image[s.Addr] = w0 | uint16(r)<<4

	case vm.FormR1R2:
		r1, err := registerIndex(s.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		r2, err := registerIndex(s.Args[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		image[s.Addr] = w0 | uint16(r1)<<4 | uint16(r2)

	case vm.FormAdrX:
		adr, err := resolveValue(prog, s.Scope, s.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		x := 0
		if len(s.Args) >= 2 {
			xr, err := registerIndex(s.Args[1])
			if err != nil {
				return fmt.Errorf("line %d: %w", s.Line, err)
			}
			x = xr
		}
		image[s.Addr] = w0 | uint16(x)
		image[s.Addr+1] = adr

	case vm.FormRAdrX:
		r, err := registerIndex(s.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		adr, err := resolveValue(prog, s.Scope, s.Args[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		x := 0
		if len(s.Args) >= 3 {
			xr, err := registerIndex(s.Args[2])
			if err != nil {
				return fmt.Errorf("line %d: %w", s.Line, err)
			}
			x = xr
		}
		image[s.Addr] = w0 | uint16(r)<<4 | uint16(x)
		image[s.Addr+1] = adr

	case vm.FormStrLen:
		bufAddr, err := resolveValue(prog, s.Scope, s.Args[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		lenAddr, err := resolveValue(prog, s.Scope, s.Args[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
		image[s.Addr] = w0
		image[s.Addr+1] = bufAddr
		image[s.Addr+2] = lenAddr
	}
	return nil
}

func registerIndex(text string) (int, error) {
	if !IsArgRegister(text) {
		return 0, fmt.Errorf("expected a register operand, got %q", text)
	}
	return int(text[2] - '0'), nil
}

// resolveValue turns an ADR operand (label, #hex, or decimal) into its
// final word value, qualifying bare label references against scope.
func resolveValue(prog *parser.Program, scope, text string) (uint16, error) {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "#"):
		v, err := strconv.ParseUint(text[1:], 16, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid hex operand %q", text)
		}
		return uint16(v), nil
	case isAllDigitsSigned(text):
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric operand %q", text)
		}
		return vm.ToUnsigned(int32(n)), nil
	default:
		if addr, ok := prog.Symbols.Resolve(scope, text); ok {
			return addr, nil
		}
		return 0, fmt.Errorf("undefined label %q", text)
	}
}

func isAllDigitsSigned(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	if i >= len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
