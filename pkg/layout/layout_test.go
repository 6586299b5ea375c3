package layout

import (
	"testing"

	"moonlight/pkg/diag"
	"moonlight/pkg/parser"
	"moonlight/pkg/scanner"
)

func mustParse(t *testing.T, src string) *parser.Ast {
	t.Helper()
	toks, err := scanner.Scan(src, 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	ast, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return ast
}

func TestBuildSymbolTable(t *testing.T) {
	ast := mustParse(t, `.data
_a: .byte 1, 2, 3
_b: .word 1, 2
.space 5
_c: _d: .byte 0
_e: .space 0x10
_f: .byte 9
`)
	syms, err := BuildSymbolTable(ast)
	if err != nil {
		t.Fatalf("BuildSymbolTable failed: %v", err)
	}
	want := SymbolTable{"_a": 0, "_b": 3, "_c": 12, "_d": 12, "_e": 13, "_f": 29}
	if len(syms) != len(want) {
		t.Fatalf("symbols = %v; want %v", syms, want)
	}
	for name, addr := range want {
		if got, ok := syms[name]; !ok || got != addr {
			t.Errorf("symbol %s = %d (present=%v); want %d", name, got, ok, addr)
		}
	}
}

func TestBuildSymbolTableErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diag.Kind
	}{
		{"duplicate label", ".data\n_x: .byte 1\n_x: .byte 2\n", diag.SyntaxError},
		{"space out of u16 range", ".data\n.space 70000\n", diag.RangeError},
		{"cursor past u16 max", ".data\n.space 65535\n.byte 1\n", diag.CapacityError},
		{"bad hex count", ".data\n.space 0xZZ\n", diag.FormatError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSymbolTable(mustParse(t, tc.src))
			if diag.KindOf(err) != tc.kind {
				t.Fatalf("error = %v; want %v", err, tc.kind)
			}
			if !err.(*diag.Error).HasPos {
				t.Errorf("error %v carries no position", err)
			}
		})
	}
}

func TestMaterialize(t *testing.T) {
	ast := mustParse(t, `.data
.byte 1, 0xFF, 0b10
.word 0x1234, -2
.space 3
.byte 200
`)
	mem, err := Materialize(ast)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	want := []byte{1, 0xFF, 2, 0x34, 0x12, 0xFE, 0xFF, FillByte, FillByte, FillByte, 200, FillByte}
	for addr, b := range want {
		if mem[addr] != b {
			t.Errorf("mem[%d] = %#x; want %#x", addr, mem[addr], b)
		}
	}
	if mem[MemorySize-1] != FillByte {
		t.Errorf("untouched memory must hold the fill byte")
	}
}

func TestMaterializeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diag.Kind
		line uint32
		col  uint32
	}{
		{"byte out of range", ".data\n.byte 1, 256\n", diag.RangeError, 2, 10},
		{"word out of range", ".data\n.word 40000\n", diag.RangeError, 2, 7},
		{"space past memory end", ".data\n.space 32768\n", diag.CapacityError, 2, 8},
		{"byte past memory end", ".data\n.space 32767\n.byte 1, 2\n", diag.CapacityError, 3, 10},
		{"word straddling memory end", ".data\n.space 32767\n.word 1\n", diag.CapacityError, 3, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Materialize(mustParse(t, tc.src))
			if diag.KindOf(err) != tc.kind {
				t.Fatalf("error = %v; want %v", err, tc.kind)
			}
			de := err.(*diag.Error)
			if de.Pos.Line != tc.line || de.Pos.Column != tc.col {
				t.Errorf("error at line %d column %d; want line %d column %d", de.Pos.Line, de.Pos.Column, tc.line, tc.col)
			}
		})
	}
}

func TestSpaceAdvancesBeforeLabel(t *testing.T) {
	ast := mustParse(t, ".data\n.byte 9\n.space 5\n_after: .byte 4\n")
	syms, err := BuildSymbolTable(ast)
	if err != nil {
		t.Fatalf("BuildSymbolTable failed: %v", err)
	}
	if syms["_after"] != 6 {
		t.Errorf("_after = %d; want 6", syms["_after"])
	}
	mem, err := Materialize(ast)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if mem[6] != 4 {
		t.Errorf("mem[6] = %d; want 4", mem[6])
	}
}
