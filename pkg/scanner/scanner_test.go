package scanner

import (
	"reflect"
	"testing"

	"moonlight/pkg/diag"
	"moonlight/pkg/number"
	"moonlight/pkg/token"
)

func kinds(toks []token.Positioned) []token.Token {
	out := make([]token.Token, len(toks))
	for i, t := range toks {
		out[i] = t.Token
	}
	return out
}

func TestScanInstructionLineWithComment(t *testing.T) {
	toks, err := Scan("add $1, $2 # comment\n", 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	want := []token.Token{
		{Kind: token.Instruction, Instr: token.Add},
		{Kind: token.Register, Index: 1},
		{Kind: token.Comma},
		{Kind: token.Register, Index: 2},
	}
	if got := kinds(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %v; want %v", got, want)
	}
	if toks[0].Pos != (diag.Position{File: 0, Line: 1, Column: 1}) {
		t.Errorf("first token position = %+v; want line 1 column 1", toks[0].Pos)
	}
	wantCols := []uint32{1, 5, 7, 9}
	for i, tok := range toks {
		if tok.Pos.Column != wantCols[i] {
			t.Errorf("token %d (%v) column = %d; want %d", i, tok.Token, tok.Pos.Column, wantCols[i])
		}
	}
}

func TestScanTabIndentationSuppressesColumn(t *testing.T) {
	toks, err := Scan("\tadd &0, $1, $2\nnope\n", 3)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(toks) != 7 {
		t.Fatalf("got %d tokens; want 7: %v", len(toks), toks)
	}
	for _, tok := range toks[:6] {
		if tok.Pos.HasColumn() {
			t.Errorf("token %v on indented line has column %d", tok.Token, tok.Pos.Column)
		}
	}
	last := toks[6]
	if last.Pos != (diag.Position{File: 3, Line: 2, Column: 1}) {
		t.Errorf("token after indented line at %+v; want file 3 line 2 column 1", last.Pos)
	}
}

func TestScanStickyLabelAndStrings(t *testing.T) {
	src := `_val:.word 1, 0x10 # "quoted" in comment
.include "lib/a b.asm"
`
	toks, err := Scan(src, 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	want := []token.Token{
		{Kind: token.LabelDecl, Text: "_val"},
		{Kind: token.Directive, Dir: token.Word},
		{Kind: token.Number, Num: number.Integer(1)},
		{Kind: token.Comma},
		{Kind: token.Number, Num: number.Hex("0x10")},
		{Kind: token.Directive, Dir: token.Include},
		{Kind: token.String, Text: "lib/a b.asm"},
	}
	if got := kinds(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %v; want %v", got, want)
	}
	if toks[1].Pos.Column != 6 {
		t.Errorf(".word column = %d; want 6", toks[1].Pos.Column)
	}
}

func TestScanStringSpecialCharacters(t *testing.T) {
	toks, err := Scan(`"a # b, [c]: \"d\"\t"`, 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(toks) != 1 {
		t.Fatalf("got %d tokens; want 1: %v", len(toks), toks)
	}
	if want := "a # b, [c]: \"d\"\t"; toks[0].Text != want {
		t.Errorf("string = %q; want %q", toks[0].Text, want)
	}
}

func TestScanBrackets(t *testing.T) {
	toks, err := Scan("lw &1, _num[4]", 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	want := []token.Token{
		{Kind: token.Pseudo, Pseudo: token.Lw},
		{Kind: token.Accumulator, Index: 1},
		{Kind: token.Comma},
		{Kind: token.LabelRef, Text: "_num"},
		{Kind: token.LeftBracket},
		{Kind: token.Number, Num: number.Integer(4)},
		{Kind: token.RightBracket},
	}
	if got := kinds(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %v; want %v", got, want)
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  diag.Position
	}{
		{"invalid token", "add &0, $1, @x\n", diag.Position{Line: 1, Column: 13}},
		{"bad register", "nope\n  push $16", diag.Position{Line: 2, Column: 8}},
		{"bad accumulator", "pop &9", diag.Position{Line: 1, Column: 5}},
		{"string across newline", "\n.include \"a.asm\n\"", diag.Position{Line: 2, Column: 10}},
		{"unterminated at end", `.include "a.asm`, diag.Position{Line: 1, Column: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Scan(tc.src, 0)
			if diag.KindOf(err) != diag.FormatError {
				t.Fatalf("error = %v; want format error", err)
			}
			de := err.(*diag.Error)
			if !de.HasPos || de.Pos != tc.pos {
				t.Errorf("error position = %+v; want %+v", de.Pos, tc.pos)
			}
		})
	}
}

func TestStepTransitions(t *testing.T) {
	st := newState(0)

	st, out, err := step(st, 'a')
	if err != nil || len(out) != 0 || st.acc != "a" || st.start != 1 {
		t.Fatalf("after 'a': acc=%q start=%d out=%v err=%v", st.acc, st.start, out, err)
	}

	st, out, _ = step(st, '#')
	if !st.inComment || len(out) != 1 || out[0].text != "a" {
		t.Fatalf("'#' must flush and open a comment: %+v %v", st, out)
	}

	st, out, _ = step(st, '"')
	if st.inString || len(out) != 0 {
		t.Fatalf("quote inside a comment must be ignored: %+v", st)
	}

	st, out, _ = step(st, '\n')
	if st.inComment || st.line != 2 || st.col != 1 || len(out) != 0 {
		t.Fatalf("newline must close the comment and advance the line: %+v", st)
	}

	st, _, _ = step(st, '\t')
	if !st.indented {
		t.Fatalf("tab must mark the line as indented")
	}

	st, _, _ = step(st, '"')
	st, _, _ = step(st, '\\')
	if !st.escaped {
		t.Fatalf("backslash inside a string must arm the escape")
	}
	st, out, _ = step(st, '"')
	if !st.inString || len(out) != 0 {
		t.Fatalf("escaped quote must not close the string")
	}
	st, out, _ = step(st, '"')
	if st.inString || len(out) != 1 || out[0].text != `"\""` || out[0].pos.HasColumn() {
		t.Fatalf("closing quote must flush the literal without a column: %+v %v", st, out)
	}
}
