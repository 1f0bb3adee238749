package encoder

import (
	"io"

	"github.com/comet2/casl2comet/object"
	"github.com/comet2/casl2comet/parser"
)

// Assemble runs both assembler passes over src and writes the
// resulting object file to w. It returns the parse diagnostics (which
// may contain warnings even on success) and a nil error only if no
// fatal error occurred in either pass.
func Assemble(filename, src string, w io.Writer) (*parser.ErrorList, error) {
	prog, errs := parser.Parse(filename, src)
	if errs.HasErrors() {
		return errs, errs
	}

	entry, image, err := EncodeProgram(prog)
	if err != nil {
		return errs, err
	}

	if err := object.Write(w, entry, image); err != nil {
		return errs, err
	}
	return errs, nil
}
