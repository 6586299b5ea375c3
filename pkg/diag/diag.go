// Package diag holds the source positions and structured errors shared by
// every assembler stage. Stages build errors; callers decide how to show them.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Position locates a token in a source file. Column is 1-based; it is 0 when
// the token's line is tab-indented and column tracking is suppressed.
type Position struct {
	File   uint32
	Line   uint32
	Column uint32
}

// HasColumn reports whether the column was tracked for this position.
func (p Position) HasColumn() bool {
	return p.Column != 0
}

func (p Position) String() string {
	return fmt.Sprintf("file %d, line %d, column %d", p.File, p.Line, p.Column)
}

// Kind classifies an assembler error.
type Kind int

const (
	FormatError Kind = iota + 1 // malformed literal or token text
	RangeError                  // numeric value does not fit the target width
	SyntaxError                 // unexpected token during parsing
	CycleError                  // include graph cycle
	IOError                     // file unreadable
	CapacityError               // address space or include depth exhausted
)

var kindNames = [...]string{
	FormatError:   "format error",
	RangeError:    "range error",
	SyntaxError:   "syntax error",
	CycleError:    "include cycle",
	IOError:       "i/o error",
	CapacityError: "capacity error",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type produced by the assembler core.
type Error struct {
	Kind   Kind
	Msg    string
	Pos    Position
	HasPos bool
	// Files names the implicated files for errors with no single origin.
	Files []string
	Err   error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Msg)
	if e.HasPos {
		fmt.Fprintf(&sb, " (%s)", e.Pos)
	}
	if len(e.Files) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(e.Files, " -> "))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a position-less error.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Errorf returns an error anchored at pos.
func Errorf(kind Kind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// At anchors err at pos. Errors that already carry a position keep it;
// foreign errors are returned unchanged.
func At(err error, pos Position) error {
	var de *Error
	if !errors.As(err, &de) || de.HasPos {
		return err
	}
	anchored := *de
	anchored.Pos = pos
	anchored.HasPos = true
	return &anchored
}

// KindOf returns the Kind of err, or 0 if err is not a *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// Render formats err for a terminal, resolving file ids through nameOf.
func Render(err error, nameOf func(uint32) string) string {
	var de *Error
	if !errors.As(err, &de) {
		return "[error] " + err.Error()
	}
	var sb strings.Builder
	sb.WriteString("[error] ")
	sb.WriteString(de.Msg)
	if de.HasPos {
		fmt.Fprintf(&sb, " [file: %s, line: %d, column: %d]", nameOf(de.Pos.File), de.Pos.Line, de.Pos.Column)
	}
	if len(de.Files) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(de.Files, " -> "))
	}
	return sb.String()
}
