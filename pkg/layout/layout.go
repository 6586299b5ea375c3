// Package layout assigns data-section addresses to labels and materializes
// the initialized data memory image.
//
// Both passes walk Ast.Data in order with the same cursor: .byte advances it
// by one per value, .word by two per value and .space by its count.
package layout

import (
	"math"

	"github.com/golang/glog"

	"moonlight/pkg/diag"
	"moonlight/pkg/parser"
	"moonlight/pkg/token"
)

const (
	// MemorySize is the size of the data memory image in bytes.
	MemorySize = 32768
	// FillByte is the value of every cell no directive writes.
	FillByte = 7
)

// SymbolTable maps data label names to addresses.
type SymbolTable map[string]uint16

// DataMemory is the fixed-size data image.
type DataMemory [MemorySize]byte

// NewDataMemory returns an image filled with FillByte.
func NewDataMemory() *DataMemory {
	var m DataMemory
	for i := range m {
		m[i] = FillByte
	}
	return &m
}

// stride returns how many bytes one value of a .byte or .word entry occupies.
func stride(e parser.DataEntry) uint32 {
	if e.Directive.Is(token.Word) {
		return 2
	}
	return 1
}

func spaceCount(e parser.DataEntry) (uint32, error) {
	n, err := e.Count.Num.ToU16()
	if err != nil {
		return 0, diag.At(err, e.Count.Pos)
	}
	return uint32(n), nil
}

// BuildSymbolTable assigns each data label the cursor value of the entry it
// precedes.
func BuildSymbolTable(ast *parser.Ast) (SymbolTable, error) {
	syms := make(SymbolTable)
	var cursor uint32

	for _, e := range ast.Data {
		for _, l := range e.Labels {
			if _, exists := syms[l.Text]; exists {
				return nil, diag.Errorf(diag.SyntaxError, l.Pos, "duplicate label %s", l.Text)
			}
			syms[l.Text] = uint16(cursor)
			glog.V(2).Infof("symbol %s = 0x%04X", l.Text, cursor)
		}

		var size uint32
		if e.Directive.Is(token.Space) {
			n, err := spaceCount(e)
			if err != nil {
				return nil, err
			}
			size = n
		} else {
			size = stride(e) * uint32(len(e.Values))
		}

		cursor += size
		if cursor > math.MaxUint16 {
			return nil, diag.Errorf(diag.CapacityError, e.Directive.Pos, "stack overflow while loading symbol table")
		}
	}
	return syms, nil
}

// Materialize writes every .byte and .word value into a fresh data image.
// Words are stored little-endian.
func Materialize(ast *parser.Ast) (*DataMemory, error) {
	mem := NewDataMemory()
	var cursor uint32

	for _, e := range ast.Data {
		switch {
		case e.Directive.Is(token.Byte):
			for _, v := range e.Values {
				b, err := v.Num.ToU8()
				if err != nil {
					return nil, diag.At(err, v.Pos)
				}
				if cursor >= MemorySize {
					return nil, overflow(v.Pos)
				}
				mem[cursor] = b
				cursor++
			}
		case e.Directive.Is(token.Word):
			for _, v := range e.Values {
				w, err := v.Num.ToI16()
				if err != nil {
					return nil, diag.At(err, v.Pos)
				}
				if cursor+1 >= MemorySize {
					return nil, overflow(v.Pos)
				}
				u := uint16(w)
				mem[cursor] = byte(u & 0xFF)
				mem[cursor+1] = byte(u >> 8)
				cursor += 2
			}
		case e.Directive.Is(token.Space):
			n, err := spaceCount(e)
			if err != nil {
				return nil, err
			}
			cursor += n
			if cursor >= MemorySize {
				return nil, overflow(e.Count.Pos)
			}
		}
	}
	glog.V(1).Infof("data memory loaded: %d bytes in use", cursor)
	return mem, nil
}

func overflow(pos diag.Position) error {
	return diag.Errorf(diag.CapacityError, pos, "stack overflow while loading data memory")
}
