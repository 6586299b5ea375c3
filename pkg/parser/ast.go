package parser

import (
	"fmt"
	"strings"

	"moonlight/pkg/token"
)

// Shape is the operand layout an instruction or pseudo-instruction takes.
type Shape int

const (
	ShapeNone      Shape = iota // nope, ret
	ShapeAcRR                   // ac , reg , reg
	ShapeAcR                    // ac , reg
	ShapeR                      // reg
	ShapeAcRNumber              // ac , reg , number
	ShapeAc                     // ac
	ShapeAcNumber               // ac , number
	ShapeNumber                 // number
	ShapeJump                   // label | number
	ShapeRR                     // reg , reg
	ShapeMemory                 // ac , label [ number ]
	ShapeCall                   // label
)

var shapeNames = [...]string{
	ShapeNone:      "NONE",
	ShapeAcRR:      "AC_R_R",
	ShapeAcR:       "AC_R",
	ShapeR:         "R",
	ShapeAcRNumber: "AC_R_NUMBER",
	ShapeAc:        "AC",
	ShapeAcNumber:  "AC_NUMBER",
	ShapeNumber:    "NUMBER",
	ShapeJump:      "JUMP",
	ShapeRR:        "R_R",
	ShapeMemory:    "MEMORY",
	ShapeCall:      "CALL",
}

func (s Shape) String() string {
	if int(s) >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// InstrArg holds the significant operand tokens of an instruction in source
// order. Separators (commas, brackets) are validated but not kept.
type InstrArg struct {
	Shape    Shape
	Operands []token.Positioned
}

// DataEntry is one .byte, .word or .space line of the data section.
type DataEntry struct {
	Labels    []token.Positioned
	Directive token.Positioned
	Values    []token.Positioned // .byte / .word
	Count     token.Positioned   // .space
}

// InstrEntry is one instruction or pseudo-instruction of the instruction section.
type InstrEntry struct {
	Labels []token.Positioned
	Op     token.Positioned
	Arg    InstrArg
}

// Ast is a parsed program. Entry order is address order.
type Ast struct {
	Data  []DataEntry
	Instr []InstrEntry
}

func (e InstrEntry) String() string {
	var sb strings.Builder
	for _, l := range e.Labels {
		sb.WriteString(l.Token.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(e.Op.Token.String())
	for i, o := range e.Arg.Operands {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(o.Token.String())
	}
	return sb.String()
}
