// Package scanner turns assembly source text into positioned tokens.
//
// Scanning is a fold of step over the runes of the input. step is pure: it
// takes the current state and one rune and returns the next state plus any
// raw lexemes completed by that rune. Lexemes are classified into tokens by
// token.Classify as they are produced.
package scanner

import (
	"moonlight/pkg/diag"
	"moonlight/pkg/token"
)

// state is everything the scanner remembers between runes.
type state struct {
	file uint32
	line uint32
	col  uint32

	acc   string // pending token text
	start uint32 // column of acc's first rune

	inString  bool
	escaped   bool // previous string rune was an unescaped backslash
	inComment bool
	indented  bool // a tab was seen on this line
}

// lexeme is unclassified token text with its position.
type lexeme struct {
	text string
	pos  diag.Position
}

func newState(file uint32) state {
	return state{file: file, line: 1, col: 1}
}

// at returns the position of column col on the current line, with the column
// suppressed on tab-indented lines.
func (st state) at(col uint32) diag.Position {
	if st.indented {
		col = 0
	}
	return diag.Position{File: st.file, Line: st.line, Column: col}
}

func (st state) push(r rune) state {
	if st.acc == "" {
		st.start = st.col
	}
	st.acc += string(r)
	return st
}

func (st state) flush(out []lexeme) (state, []lexeme) {
	if st.acc == "" {
		return st, out
	}
	out = append(out, lexeme{text: st.acc, pos: st.at(st.start)})
	st.acc = ""
	return st, out
}

// step consumes one rune. String mode takes precedence over comment mode,
// which takes precedence over normal scanning.
func step(st state, r rune) (state, []lexeme, error) {
	var out []lexeme

	if st.inString {
		switch {
		case r == '\n':
			return st, nil, diag.Errorf(diag.FormatError, st.at(st.start), "unterminated string literal")
		case r == '"' && !st.escaped:
			st = st.push(r)
			st.inString = false
			st, out = st.flush(out)
		default:
			st.escaped = r == '\\' && !st.escaped
			st = st.push(r)
		}
		st.col++
		return st, out, nil
	}

	if r == '\n' {
		st, out = st.flush(out)
		st.inComment = false
		st.indented = false
		st.line++
		st.col = 1
		return st, out, nil
	}

	if st.inComment {
		st.col++
		return st, nil, nil
	}

	switch r {
	case '\t':
		st, out = st.flush(out)
		st.indented = true
	case ' ':
		st, out = st.flush(out)
	case '#':
		st, out = st.flush(out)
		st.inComment = true
	case '"':
		st, out = st.flush(out)
		st = st.push(r)
		st.inString = true
		st.escaped = false
	case ',', '[', ']':
		st, out = st.flush(out)
		out = append(out, lexeme{text: string(r), pos: st.at(st.col)})
	case ':':
		// Ends a label declaration even when no delimiter follows, as in "_x:.byte".
		st = st.push(r)
		st, out = st.flush(out)
	default:
		st = st.push(r)
	}
	st.col++
	return st, out, nil
}

// finish flushes whatever is pending at end of input.
func finish(st state) ([]lexeme, error) {
	if st.inString {
		return nil, diag.Errorf(diag.FormatError, st.at(st.start), "unterminated string literal")
	}
	_, out := st.flush(nil)
	return out, nil
}

// Scan tokenizes src, tagging every token with file. It stops at the first
// malformed token.
func Scan(src string, file uint32) ([]token.Positioned, error) {
	st := newState(file)
	var toks []token.Positioned

	for _, r := range src {
		var lx []lexeme
		var err error
		st, lx, err = step(st, r)
		if err != nil {
			return nil, err
		}
		if toks, err = classify(toks, lx); err != nil {
			return nil, err
		}
	}

	lx, err := finish(st)
	if err != nil {
		return nil, err
	}
	return classify(toks, lx)
}

func classify(toks []token.Positioned, lx []lexeme) ([]token.Positioned, error) {
	for _, l := range lx {
		tok, err := token.Classify(l.text)
		if err != nil {
			return nil, diag.At(err, l.pos)
		}
		toks = append(toks, token.Positioned{Token: tok, Pos: l.pos})
	}
	return toks, nil
}
