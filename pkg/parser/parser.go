// Package parser builds an Ast from a resolved token stream.
package parser

import (
	"fmt"
	"slices"

	"moonlight/pkg/diag"
	"moonlight/pkg/token"
)

type section int

const (
	sectionInst section = iota
	sectionData
)

// operand is one expected token of a shape's operand pattern.
type operand struct {
	kinds []token.Kind
	what  string
	keep  bool
}

var (
	acc    = operand{[]token.Kind{token.Accumulator}, "an accumulator", true}
	reg    = operand{[]token.Kind{token.Register}, "a register", true}
	num    = operand{[]token.Kind{token.Number}, "a number", true}
	label  = operand{[]token.Kind{token.LabelRef}, "a label reference", true}
	target = operand{[]token.Kind{token.LabelRef, token.Number}, "a label reference or number", true}
	comma  = operand{[]token.Kind{token.Comma}, "a comma", false}
	lbrack = operand{[]token.Kind{token.LeftBracket}, "a left square bracket", false}
	rbrack = operand{[]token.Kind{token.RightBracket}, "a right square bracket", false}
)

var patterns = [...][]operand{
	ShapeNone:      nil,
	ShapeAcRR:      {acc, comma, reg, comma, reg},
	ShapeAcR:       {acc, comma, reg},
	ShapeR:         {reg},
	ShapeAcRNumber: {acc, comma, reg, comma, num},
	ShapeAc:        {acc},
	ShapeAcNumber:  {acc, comma, num},
	ShapeNumber:    {num},
	ShapeJump:      {target},
	ShapeRR:        {reg, comma, reg},
	ShapeMemory:    {acc, comma, label, lbrack, num, rbrack},
	ShapeCall:      {label},
}

// ShapeOf returns the operand shape of a native instruction.
func ShapeOf(op token.Op) Shape {
	switch op {
	case token.Add, token.Sub, token.And, token.Or, token.Xor, token.Nand,
		token.Nor, token.Xnor, token.Slt, token.Lwr, token.Swr:
		return ShapeAcRR
	case token.Not, token.Mtac, token.Mfac, token.Bgtzr, token.Bltzr, token.Beqzr, token.Bnezr:
		return ShapeAcR
	case token.Tmul, token.Tdiv, token.Ja, token.Jal:
		return ShapeR
	case token.Sll, token.Srl, token.Sra:
		return ShapeAcRNumber
	case token.Mtl, token.Mfl, token.Mth, token.Mfh, token.Push, token.Pop:
		return ShapeAc
	case token.Addi, token.Subi, token.Andi, token.Ori, token.Xori, token.Nandi, token.Nori,
		token.Xnori, token.Lli, token.Lui, token.Lsi, token.Bgtz, token.Bltz, token.Beqz, token.Bnez:
		return ShapeAcNumber
	case token.Jr, token.Jrl:
		return ShapeNumber
	}
	return ShapeNone
}

// PseudoShapeOf returns the operand shape of a pseudo-instruction.
func PseudoShapeOf(op token.PseudoOp) Shape {
	switch op {
	case token.Jump:
		return ShapeJump
	case token.Lw, token.Sw:
		return ShapeMemory
	case token.Mul, token.Div, token.Swap:
		return ShapeRR
	case token.Call:
		return ShapeCall
	}
	return ShapeNone
}

// Parser consumes a resolved token stream in one forward pass.
//
// Grammar:
//
//	program   = (".data" | ".inst" | labelDecl | entry)*
//	entry     = dataEntry    (in the data section)
//	          | instrEntry   (in the instruction section, the default)
//	dataEntry = (".byte" | ".word") number ("," number)*
//	          | ".space" number
//	instrEntry = mnemonic operands   (operands fixed by the mnemonic's Shape)
//
// Label declarations are buffered and attached to the next entry, in
// whichever section it falls. Labels left over at end of input are an error.
type Parser struct {
	tokens  []token.Positioned
	pos     int
	section section
	labels  []token.Positioned
	ast     Ast
}

func NewParser(tokens []token.Positioned) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds the Ast for tokens, stopping at the first syntax error.
func Parse(tokens []token.Positioned) (*Ast, error) {
	return NewParser(tokens).Parse()
}

func (p *Parser) Parse() (*Ast, error) {
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]

		switch {
		case tok.Is(token.Data), tok.Is(token.Inst):
			// Pending labels carry over to the next entry of the new section.
			p.section = sectionInst
			if tok.Dir == token.Data {
				p.section = sectionData
			}
			p.pos++
			continue
		case tok.Kind == token.LabelDecl:
			p.labels = append(p.labels, tok)
			p.pos++
			continue
		case tok.Is(token.Ascii):
			return nil, diag.Errorf(diag.SyntaxError, tok.Pos, ".ascii directive is not supported")
		case tok.Is(token.Include):
			return nil, diag.Errorf(diag.SyntaxError, tok.Pos, "unresolved .include directive")
		}

		var err error
		if p.section == sectionData {
			err = p.parseData(tok)
		} else {
			err = p.parseInstr(tok)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := p.checkNoPendingLabels(); err != nil {
		return nil, err
	}
	ast := p.ast
	return &ast, nil
}

func (p *Parser) checkNoPendingLabels() error {
	if len(p.labels) == 0 {
		return nil
	}
	l := p.labels[len(p.labels)-1]
	return diag.Errorf(diag.SyntaxError, l.Pos, "dangling label declaration %s", l.Text)
}

// takeLabels hands the buffered labels to the entry being built.
func (p *Parser) takeLabels() []token.Positioned {
	labels := p.labels
	p.labels = nil
	return labels
}

func (p *Parser) parseData(dir token.Positioned) error {
	if dir.Kind != token.Directive {
		return diag.Errorf(diag.SyntaxError, dir.Pos, "expected a label declaration or directive in data section, found %s", dir.Kind)
	}
	p.pos++

	switch dir.Dir {
	case token.Byte, token.Word:
		values, err := p.readValues(dir)
		if err != nil {
			return err
		}
		p.ast.Data = append(p.ast.Data, DataEntry{Labels: p.takeLabels(), Directive: dir, Values: values})
		return nil
	case token.Space:
		count, err := p.expect(num, dir, fmt.Sprintf("expected a number after %s", dir.Dir))
		if err != nil {
			return err
		}
		p.ast.Data = append(p.ast.Data, DataEntry{Labels: p.takeLabels(), Directive: dir, Count: count})
		return nil
	}
	return diag.Errorf(diag.SyntaxError, dir.Pos, "expected a label declaration or directive in data section, found %s", dir.Dir)
}

// readValues reads a comma separated run of numbers.
func (p *Parser) readValues(dir token.Positioned) ([]token.Positioned, error) {
	var values []token.Positioned
	prev := dir
	msg := fmt.Sprintf("expected a number after %s", dir.Dir)
	for {
		v, err := p.expect(num, prev, msg)
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		if p.pos >= len(p.tokens) || p.tokens[p.pos].Kind != token.Comma {
			return values, nil
		}
		prev = p.tokens[p.pos]
		p.pos++
		msg = fmt.Sprintf("expected a number after comma in %s", dir.Dir)
	}
}

func (p *Parser) parseInstr(op token.Positioned) error {
	var shape Shape
	switch op.Kind {
	case token.Instruction:
		shape = ShapeOf(op.Instr)
	case token.Pseudo:
		shape = PseudoShapeOf(op.Pseudo)
	default:
		return diag.Errorf(diag.SyntaxError, op.Pos, "expected a label declaration, instruction or pseudo instruction, found %s", op.Kind)
	}
	p.pos++

	operands, err := p.readOperands(op, shape)
	if err != nil {
		return err
	}
	p.ast.Instr = append(p.ast.Instr, InstrEntry{
		Labels: p.takeLabels(),
		Op:     op,
		Arg:    InstrArg{Shape: shape, Operands: operands},
	})
	return nil
}

// readOperands reads exactly the tokens shape demands, failing on the first
// mismatch without backtracking.
func (p *Parser) readOperands(op token.Positioned, shape Shape) ([]token.Positioned, error) {
	var operands []token.Positioned
	prev := op
	for i, want := range patterns[shape] {
		msg := fmt.Sprintf("expected %s after %s", want.what, op.Token)
		if i > 0 {
			msg = fmt.Sprintf("expected %s after %s in %s", want.what, prev.Kind, op.Token)
		}
		tok, err := p.expect(want, prev, msg)
		if err != nil {
			return nil, err
		}
		if want.keep {
			operands = append(operands, tok)
		}
		prev = tok
	}
	return operands, nil
}

// expect consumes the next token if its kind matches want. When the stream
// is exhausted the error is anchored at prev.
func (p *Parser) expect(want operand, prev token.Positioned, msg string) (token.Positioned, error) {
	if p.pos >= len(p.tokens) {
		return token.Positioned{}, diag.Errorf(diag.SyntaxError, prev.Pos, "%s", msg)
	}
	tok := p.tokens[p.pos]
	if !slices.Contains(want.kinds, tok.Kind) {
		return token.Positioned{}, diag.Errorf(diag.SyntaxError, tok.Pos, "%s, found %s", msg, tok.Kind)
	}
	p.pos++
	return tok, nil
}
