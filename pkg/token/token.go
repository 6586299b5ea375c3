// Package token defines the lexical units of the assembly language and the
// classification of raw source text into them.
package token

import (
	"fmt"

	"moonlight/pkg/diag"
	"moonlight/pkg/number"
)

// Kind identifies the category of a token.
type Kind int

const (
	Number      Kind = iota // numeric literal
	String                  // "..." with escapes processed
	LabelDecl               // _name:
	LabelRef                // _name
	Instruction             // native mnemonic
	Pseudo                  // pseudo-instruction mnemonic
	Directive               // .data, .byte, ...
	Accumulator             // &0 .. &3
	Register                // $0 .. $15
	Comma                   // ,
	LeftBracket             // [
	RightBracket            // ]
)

var kindNames = [...]string{
	Number:       "number",
	String:       "string literal",
	LabelDecl:    "label declaration",
	LabelRef:     "label reference",
	Instruction:  "instruction",
	Pseudo:       "pseudo instruction",
	Directive:    "directive",
	Accumulator:  "accumulator",
	Register:     "register",
	Comma:        "comma",
	LeftBracket:  "left bracket",
	RightBracket: "right bracket",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a classified lexical unit. Only the field matching Kind is set,
// so tokens compare structurally with ==.
type Token struct {
	Kind   Kind
	Num    number.Literal // Number
	Text   string         // String contents, label name (without ':')
	Instr  Op             // Instruction
	Pseudo PseudoOp       // Pseudo
	Dir    DirectiveOp    // Directive
	Index  uint8          // Accumulator / Register
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return t.Num.String()
	case String:
		return fmt.Sprintf("%q", t.Text)
	case LabelDecl:
		return t.Text + ":"
	case LabelRef:
		return t.Text
	case Instruction:
		return t.Instr.String()
	case Pseudo:
		return t.Pseudo.String()
	case Directive:
		return t.Dir.String()
	case Accumulator:
		return fmt.Sprintf("&%d", t.Index)
	case Register:
		return fmt.Sprintf("$%d", t.Index)
	case Comma:
		return ","
	case LeftBracket:
		return "["
	case RightBracket:
		return "]"
	}
	return t.Kind.String()
}

// Positioned pairs a token with where it was read. Values are immutable once
// produced by the scanner.
type Positioned struct {
	Token
	Pos diag.Position
}

func (p Positioned) String() string {
	return fmt.Sprintf("%-18s %-12s line %d col %d (file %d)", p.Kind, p.Token, p.Pos.Line, p.Pos.Column, p.Pos.File)
}

// Is reports whether the token is the given directive.
func (t Token) Is(d DirectiveOp) bool {
	return t.Kind == Directive && t.Dir == d
}
