package token

import (
	"testing"

	"moonlight/pkg/diag"
	"moonlight/pkg/number"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Token
	}{
		{"add", Token{Kind: Instruction, Instr: Add}},
		{"nope", Token{Kind: Instruction, Instr: Nope}},
		{"bnezr", Token{Kind: Instruction, Instr: Bnezr}},
		{".include", Token{Kind: Directive, Dir: Include}},
		{".ascii", Token{Kind: Directive, Dir: Ascii}},
		{"swap", Token{Kind: Pseudo, Pseudo: Swap}},
		{"&3", Token{Kind: Accumulator, Index: 3}},
		{"$0", Token{Kind: Register, Index: 0}},
		{"$15", Token{Kind: Register, Index: 15}},
		{"_loop:", Token{Kind: LabelDecl, Text: "_loop"}},
		{"_loop", Token{Kind: LabelRef, Text: "_loop"}},
		{`"a b"`, Token{Kind: String, Text: "a b"}},
		{`"x\ty\n"`, Token{Kind: String, Text: "x\ty\n"}},
		{"42", Token{Kind: Number, Num: number.Integer(42)}},
		{"-7", Token{Kind: Number, Num: number.Integer(-7)}},
		{"0b101", Token{Kind: Number, Num: number.Bin("0b101")}},
		{"0XfF", Token{Kind: Number, Num: number.Hex("0XfF")}},
		{",", Token{Kind: Comma}},
		{"[", Token{Kind: LeftBracket}},
		{"]", Token{Kind: RightBracket}},
	}
	for _, tc := range tests {
		got, err := Classify(tc.text)
		if err != nil {
			t.Errorf("Classify(%q) unexpected error: %v", tc.text, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Classify(%q) = %+v; want %+v", tc.text, got, tc.want)
		}
	}
}

func TestClassifyRejects(t *testing.T) {
	for _, text := range []string{"&4", "&", "$16", "$01", "$x", "ADD", "foo", "12abc", "loop:"} {
		_, err := Classify(text)
		if diag.KindOf(err) != diag.FormatError {
			t.Errorf("Classify(%q) error = %v; want format error", text, err)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\r\t\0`, "\r\t\x00"},
		{`say \"hi\"`, `say "hi"`},
		{`back\\slash`, `back\slash`},
		{`keep \q as is`, `keep \q as is`},
		{`trailing\`, `trailing\`},
	}
	for _, tc := range tests {
		if got := Unescape(tc.in); got != tc.want {
			t.Errorf("Unescape(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestNamesRoundTrip(t *testing.T) {
	for i := range opNames {
		op := Op(i)
		if got, ok := instructions[op.String()]; !ok || got != op {
			t.Errorf("instruction %v does not round trip", op)
		}
	}
	for i := range pseudoNames {
		p := PseudoOp(i)
		if got := pseudos[p.String()]; got != p {
			t.Errorf("pseudo instruction %v does not round trip", p)
		}
	}
	if Op(999).String() != "Op(999)" {
		t.Errorf("unexpected name for unknown op")
	}
}
