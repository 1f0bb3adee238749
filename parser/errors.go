package parser

import (
	"fmt"
	"strings"
)

// Position locates a diagnostic in the source file.
type Position struct {
	Filename string
	Line     int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// ErrorKind categorizes a parse error, mirroring the set of fatal
// conditions the specification enumerates.
type ErrorKind int

const (
	ErrorSyntax ErrorKind = iota
	ErrorUndefinedLabel
	ErrorDuplicateLabel
	ErrorInvalidDirective
	ErrorInvalidInstruction
	ErrorInvalidOperand
	ErrorFileIO
)

// Error is one fatal assembly diagnostic: position, source text, and
// message. Assembly halts on the first ErrorList containing any
// Errors; no partial object file is written.
type Error struct {
	Pos     Position
	Message string
	Context string
	Kind    ErrorKind
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: error: %s\n", e.Pos, e.Message))
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", e.Context))
	}
	return sb.String()
}

// NewError builds an Error with no source context.
func NewError(pos Position, kind ErrorKind, message string) *Error {
	return &Error{Pos: pos, Message: message, Kind: kind}
}

// NewErrorWithContext builds an Error carrying the offending source
// line, per the specification's requirement that fatal errors report
// both the line number and the line text.
func NewErrorWithContext(pos Position, kind ErrorKind, message, context string) *Error {
	return &Error{Pos: pos, Message: message, Context: context, Kind: kind}
}

// Warning is a non-fatal diagnostic (e.g. an unused label).
type Warning struct {
	Pos     Position
	Message string
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

// ErrorList accumulates every diagnostic produced during a pass so
// all of them can be reported together rather than stopping at the
// first one.
type ErrorList struct {
	Errors   []*Error
	Warnings []*Warning
}

func (el *ErrorList) AddError(err *Error)     { el.Errors = append(el.Errors, err) }
func (el *ErrorList) AddWarning(w *Warning)   { el.Warnings = append(el.Warnings, w) }
func (el *ErrorList) HasErrors() bool         { return len(el.Errors) > 0 }

func (el *ErrorList) Error() string {
	var sb strings.Builder
	for _, err := range el.Errors {
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (el *ErrorList) PrintWarnings() string {
	var sb strings.Builder
	for _, w := range el.Warnings {
		sb.WriteString(w.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
