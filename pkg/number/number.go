// Package number converts numeric literals into fixed-width integers.
//
// Decimal literals are range checked against the target type. Binary and
// hexadecimal literals are read as raw bit patterns of the target width and
// reinterpreted as two's complement for signed targets.
package number

import (
	"fmt"
	"strings"

	"moonlight/pkg/diag"
)

// Base identifies how a literal was written.
type Base int

const (
	Decimal Base = iota
	Binary
	Hexadecimal
)

// Literal is a numeric literal as it appeared in the source. Binary and
// hexadecimal literals keep their 0b/0x prefix in Text and are converted lazily.
type Literal struct {
	Base  Base
	Value int32
	Text  string
}

// Integer returns a decimal literal.
func Integer(v int32) Literal {
	return Literal{Base: Decimal, Value: v}
}

// Bin returns a binary literal; text must include the 0b prefix.
func Bin(text string) Literal {
	return Literal{Base: Binary, Text: text}
}

// Hex returns a hexadecimal literal; text must include the 0x prefix.
func Hex(text string) Literal {
	return Literal{Base: Hexadecimal, Text: text}
}

func (l Literal) String() string {
	if l.Base == Decimal {
		return fmt.Sprintf("%d", l.Value)
	}
	return l.Text
}

// maxHexLen bounds "0x" plus four digits.
const maxHexLen = 6

func (l Literal) ToU8() (uint8, error) {
	v, err := l.convert(8, false)
	return uint8(v), err
}

func (l Literal) ToI8() (int8, error) {
	v, err := l.convert(8, true)
	return int8(v), err
}

func (l Literal) ToU16() (uint16, error) {
	v, err := l.convert(16, false)
	return uint16(v), err
}

func (l Literal) ToI16() (int16, error) {
	v, err := l.convert(16, true)
	return int16(v), err
}

func (l Literal) convert(width uint, signed bool) (int64, error) {
	switch l.Base {
	case Decimal:
		lo, hi := int64(0), int64(1)<<width-1
		if signed {
			lo, hi = -(int64(1) << (width - 1)), int64(1)<<(width-1)-1
		}
		v := int64(l.Value)
		if v < lo || v > hi {
			return 0, diag.New(diag.RangeError, "value %d out of range for %s", v, typeName(width, signed))
		}
		return v, nil
	case Binary:
		bits, err := parseBinary(l.Text, width)
		if err != nil {
			return 0, err
		}
		return reinterpret(bits, width, signed), nil
	case Hexadecimal:
		bits, err := parseHex(l.Text)
		if err != nil {
			return 0, err
		}
		if bits >= uint64(1)<<width {
			return 0, diag.New(diag.RangeError, "value overflow converting %s to %s", l.Text, typeName(width, signed))
		}
		return reinterpret(bits, width, signed), nil
	}
	return 0, diag.New(diag.FormatError, "unknown literal base %d", int(l.Base))
}

func parseBinary(text string, width uint) (uint64, error) {
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, "0b") || len(lower) < 3 || len(lower) > 2+int(width) {
		return 0, diag.New(diag.FormatError, "invalid binary literal %s: want 0b followed by 1 to %d digits", text, width)
	}
	var bits uint64
	for _, c := range lower[2:] {
		switch c {
		case '0':
			bits <<= 1
		case '1':
			bits = bits<<1 | 1
		default:
			return 0, diag.New(diag.FormatError, "invalid binary digit %q in %s", c, text)
		}
	}
	return bits, nil
}

func parseHex(text string) (uint64, error) {
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, "0x") || len(lower) < 3 || len(lower) > maxHexLen {
		return 0, diag.New(diag.FormatError, "invalid hexadecimal literal %s: want 0x followed by 1 to 4 digits", text)
	}
	var v uint64
	for _, c := range lower[2:] {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		default:
			return 0, diag.New(diag.FormatError, "invalid hexadecimal digit %q in %s", c, text)
		}
		v = v*16 + d
	}
	return v, nil
}

func reinterpret(bits uint64, width uint, signed bool) int64 {
	if signed && bits >= uint64(1)<<(width-1) {
		return int64(bits) - int64(1)<<width
	}
	return int64(bits)
}

func typeName(width uint, signed bool) string {
	if signed {
		return fmt.Sprintf("i%d", width)
	}
	return fmt.Sprintf("u%d", width)
}
