package ir

import (
	"errors"
	"fmt"
)

// Diagnostic codes.
//
// E1xx are parse failures: the assembly text is malformed or references
// a name that was never defined.
// E2xx are inference failures: the operand/attribute combination is not
// well-typed for the operation, and construction is refused.
// E3xx are verification failures: a node's stored result types no longer
// match what inference computes from its current operands.
const (
	// Parse failures (E100-E199)
	ErrSyntax       = "E100" // malformed assembly text
	ErrUnknownValue = "E101" // reference to a name with no definition

	// Inference failures (E200-E299)
	ErrArityMismatch   = "E200" // wrong operand or result count
	ErrKindMismatch    = "E201" // operand type kind not accepted by the op
	ErrWidthOutOfRange = "E202" // attribute or width parameter out of range
	ErrFieldNotFound   = "E203" // bundle field does not exist
	ErrIndexOutOfRange = "E204" // static index exceeds aggregate size
	ErrUnknownOp       = "E205" // kind has no registered inference rule
	ErrAttrMissing     = "E206" // required attribute absent or mistyped

	// Verification failures (E300-E399)
	ErrTypeMismatch = "E300" // stored result type differs from recomputed
	ErrUseBeforeDef = "E301" // operand referenced before its defining node
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Loc is a source location attached to nodes and diagnostics.
type Loc struct {
	File string
	Line int
}

func (l Loc) String() string {
	if l.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Diagnostic is a structured record produced on inference or
// verification failure. It describes the graph; it never mutates it.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Loc      Loc      `json:"-"`
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if loc := d.Loc.String(); loc != "" {
		return fmt.Sprintf("[%s] %s: %s", d.Code, loc, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}

// Errorf builds an error diagnostic with the given code.
func Errorf(code, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}

// At returns a copy of the diagnostic carrying the given location.
func (d *Diagnostic) At(loc Loc) *Diagnostic {
	out := *d
	out.Loc = loc
	return &out
}

// HasCode reports whether err is (or wraps) a Diagnostic with the given
// code. Uses errors.As to handle wrapped errors.
func HasCode(err error, code string) bool {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Code == code
	}
	return false
}
