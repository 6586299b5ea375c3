package token

import (
	"strconv"
	"strings"

	"moonlight/pkg/diag"
	"moonlight/pkg/number"
)

// Classify maps accumulated source text to a Token. Matching is tried in a
// fixed order: instruction, directive, pseudo-instruction, accumulator,
// register, label, string literal, decimal, then binary/hex literal.
// The returned error carries no position; the scanner anchors it.
func Classify(text string) (Token, error) {
	if op, ok := instructions[text]; ok {
		return Token{Kind: Instruction, Instr: op}, nil
	}
	if d, ok := directives[text]; ok {
		return Token{Kind: Directive, Dir: d}, nil
	}
	if p, ok := pseudos[text]; ok {
		return Token{Kind: Pseudo, Pseudo: p}, nil
	}

	switch text {
	case ",":
		return Token{Kind: Comma}, nil
	case "[":
		return Token{Kind: LeftBracket}, nil
	case "]":
		return Token{Kind: RightBracket}, nil
	}

	switch {
	case strings.HasPrefix(text, "&"):
		n, ok := slotIndex(text[1:], 3)
		if !ok {
			return Token{}, diag.New(diag.FormatError, "invalid accumulator: %s", text)
		}
		return Token{Kind: Accumulator, Index: n}, nil
	case strings.HasPrefix(text, "$"):
		n, ok := slotIndex(text[1:], 15)
		if !ok {
			return Token{}, diag.New(diag.FormatError, "invalid register: %s", text)
		}
		return Token{Kind: Register, Index: n}, nil
	case strings.HasPrefix(text, "_"):
		if strings.HasSuffix(text, ":") {
			return Token{Kind: LabelDecl, Text: strings.TrimRight(text, ":")}, nil
		}
		return Token{Kind: LabelRef, Text: text}, nil
	case len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`):
		return Token{Kind: String, Text: Unescape(text[1 : len(text)-1])}, nil
	}

	if v, err := strconv.ParseInt(text, 10, 32); err == nil {
		return Token{Kind: Number, Num: number.Integer(int32(v))}, nil
	}

	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "0b"):
		return Token{Kind: Number, Num: number.Bin(text)}, nil
	case strings.HasPrefix(lower, "0x"):
		return Token{Kind: Number, Num: number.Hex(text)}, nil
	}

	return Token{}, diag.New(diag.FormatError, "invalid token: %s", text)
}

// slotIndex parses the canonical decimal form of an accumulator or register
// number no greater than max.
func slotIndex(s string, max int) (uint8, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > max || strconv.Itoa(n) != s {
		return 0, false
	}
	return uint8(n), true
}

// Unescape processes \n \t \r \" \\ and \0. Unknown sequences, and a trailing
// lone backslash, are kept verbatim.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			sb.WriteRune('\\')
			break
		}
		i++
		switch runes[i] {
		case 'n':
			sb.WriteRune('\n')
		case 't':
			sb.WriteRune('\t')
		case 'r':
			sb.WriteRune('\r')
		case '"':
			sb.WriteRune('"')
		case '\\':
			sb.WriteRune('\\')
		case '0':
			sb.WriteRune(0)
		default:
			sb.WriteRune('\\')
			sb.WriteRune(runes[i])
		}
	}
	return sb.String()
}
