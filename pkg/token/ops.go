package token

import "fmt"

// Op is a native instruction mnemonic.
type Op int

const (
	Nope Op = iota

	Add
	Sub
	Not
	And
	Or
	Xor
	Nand
	Nor
	Xnor
	Slt
	Tmul
	Tdiv

	Sll
	Srl
	Sra

	Mtl
	Mfl
	Mth
	Mfh
	Mtac
	Mfac

	Addi
	Subi
	Andi
	Ori
	Xori
	Nandi
	Nori
	Xnori
	Lli
	Lui
	Lsi

	Lwr
	Swr
	Push
	Pop

	Jr
	Jrl
	Ja
	Jal
	Bgtz
	Bltz
	Beqz
	Bnez
	Bgtzr
	Bltzr
	Beqzr
	Bnezr
)

var opNames = [...]string{
	Nope:  "nope",
	Add:   "add",
	Sub:   "sub",
	Not:   "not",
	And:   "and",
	Or:    "or",
	Xor:   "xor",
	Nand:  "nand",
	Nor:   "nor",
	Xnor:  "xnor",
	Slt:   "slt",
	Tmul:  "tmul",
	Tdiv:  "tdiv",
	Sll:   "sll",
	Srl:   "srl",
	Sra:   "sra",
	Mtl:   "mtl",
	Mfl:   "mfl",
	Mth:   "mth",
	Mfh:   "mfh",
	Mtac:  "mtac",
	Mfac:  "mfac",
	Addi:  "addi",
	Subi:  "subi",
	Andi:  "andi",
	Ori:   "ori",
	Xori:  "xori",
	Nandi: "nandi",
	Nori:  "nori",
	Xnori: "xnori",
	Lli:   "lli",
	Lui:   "lui",
	Lsi:   "lsi",
	Lwr:   "lwr",
	Swr:   "swr",
	Push:  "push",
	Pop:   "pop",
	Jr:    "jr",
	Jrl:   "jrl",
	Ja:    "ja",
	Jal:   "jal",
	Bgtz:  "bgtz",
	Bltz:  "bltz",
	Beqz:  "beqz",
	Bnez:  "bnez",
	Bgtzr: "bgtzr",
	Bltzr: "bltzr",
	Beqzr: "beqzr",
	Bnezr: "bnezr",
}

func (o Op) String() string {
	if int(o) >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// PseudoOp is a pseudo-instruction mnemonic.
type PseudoOp int

const (
	Jump PseudoOp = iota
	Lw
	Sw
	Mul
	Div
	Swap
	Call
	Ret
)

var pseudoNames = [...]string{
	Jump: "jump",
	Lw:   "lw",
	Sw:   "sw",
	Mul:  "mul",
	Div:  "div",
	Swap: "swap",
	Call: "call",
	Ret:  "ret",
}

func (p PseudoOp) String() string {
	if int(p) >= 0 && int(p) < len(pseudoNames) {
		return pseudoNames[p]
	}
	return fmt.Sprintf("PseudoOp(%d)", int(p))
}

// DirectiveOp is a dot-prefixed assembler directive.
type DirectiveOp int

const (
	Include DirectiveOp = iota
	Data
	Inst
	Space
	Word
	Byte
	Ascii
)

var directiveNames = [...]string{
	Include: ".include",
	Data:    ".data",
	Inst:    ".inst",
	Space:   ".space",
	Word:    ".word",
	Byte:    ".byte",
	Ascii:   ".ascii",
}

func (d DirectiveOp) String() string {
	if int(d) >= 0 && int(d) < len(directiveNames) {
		return directiveNames[d]
	}
	return fmt.Sprintf("DirectiveOp(%d)", int(d))
}

// Lookup tables keyed by exact source text.
var (
	instructions = make(map[string]Op, len(opNames))
	directives   = make(map[string]DirectiveOp, len(directiveNames))
	pseudos      = make(map[string]PseudoOp, len(pseudoNames))
)

func init() {
	for op, name := range opNames {
		instructions[name] = Op(op)
	}
	for d, name := range directiveNames {
		directives[name] = DirectiveOp(d)
	}
	for p, name := range pseudoNames {
		pseudos[name] = PseudoOp(p)
	}
}
