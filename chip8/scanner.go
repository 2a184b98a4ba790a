package chip8

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

/// Kinds of lexical assembly tokens.
///
type tokenKind uint8

const (
	tokEnd tokenKind = iota
	tokChar
	tokComma
	tokLabel
	tokRef
	tokMnemonic
	tokEqu
	tokNum
	tokText
	tokIndirect
	tokV
	tokI
	tokB
	tokF
	tokK
	tokDT
	tokST
)

/// A scanned token. Numbers and registers carry n, labels, references,
/// mnemonics and text carry s.
///
type token struct {
	kind tokenKind
	n    int
	s    string
}

var errUnexpected = errors.New("unexpected token")

/// Number literal syntax.
///
type radix struct {
	name   string
	prefix int
	base   int
	digits string
}

var (
	decimalLit = radix{name: "decimal", base: 10, digits: "0123456789"}
	hexLit     = radix{name: "hex", prefix: 1, base: 16, digits: "0123456789ABCDEF"}

	// '.' may be used for 0 so sprites can be drawn in the source
	binaryLit = radix{name: "binary", prefix: 1, base: 2, digits: ".01"}
)

/// Registers and other reserved words that may appear as operands.
///
var keywords = map[string]tokenKind{
	"I":   tokI,
	"B":   tokB,
	"F":   tokF,
	"K":   tokK,
	"D":   tokDT,
	"DT":  tokDT,
	"S":   tokST,
	"ST":  tokST,
	"EQU": tokEqu,
}

/// lexer scans a single, upper case line of source.
///
type lexer struct {
	src []byte
	pos int

	// set once the first token of the line was scanned
	started bool
}

/// A parsed line: an optional label, then either an EQU value or an
/// optional instruction with its operands.
///
type statement struct {
	label string

	equ   bool
	value int

	mnemonic string
	args     []token
}

/// Parse one line of source.
///
func parseLine(src []byte) (statement, error) {
	var st statement

	l := &lexer{src: src}

	t, err := l.next()
	if err != nil {
		return st, err
	}

	if t.kind == tokLabel {
		st.label = t.s

		if t, err = l.next(); err != nil {
			return st, err
		}

		if t.kind == tokEqu {
			return st, l.equ(&st)
		}
	}

	switch t.kind {
	case tokEnd:
		return st, nil
	case tokMnemonic:
		st.mnemonic = t.s
		st.args, err = l.operands()
		return st, err
	}

	return st, errUnexpected
}

/// The value of an EQU must be a literal and end the line.
///
func (l *lexer) equ(st *statement) error {
	v, err := l.next()
	if err != nil {
		return err
	}

	end, err := l.next()
	if err != nil {
		return err
	}

	if v.kind != tokNum || end.kind != tokEnd {
		return errors.New("illegal label assignment")
	}

	st.equ = true
	st.value = v.n
	return nil
}

/// Scan a comma-separated operand list up to the end of the line.
///
func (l *lexer) operands() ([]token, error) {
	t, err := l.next()
	if err != nil || t.kind == tokEnd {
		return nil, err
	}

	args := make([]token, 0, 3)

	for {
		if t.kind == tokComma || t.kind == tokEnd {
			return nil, errors.New("expected operand")
		}

		args = append(args, t)

		sep, err := l.next()
		if err != nil {
			return nil, err
		}

		switch sep.kind {
		case tokEnd:
			return args, nil
		case tokComma:
		default:
			return nil, errUnexpected
		}

		if t, err = l.next(); err != nil {
			return nil, err
		}
	}
}

/// Scan the next token. Comments end the line.
///
func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && l.src[l.pos] <= ' ' {
		l.pos++
	}

	if l.pos >= len(l.src) {
		return token{kind: tokEnd}, nil
	}

	first := !l.started
	l.started = true

	c := l.src[l.pos]

	switch {
	case c == ';':
		l.pos = len(l.src)
		return token{kind: tokEnd}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma}, nil
	case c == '.' && first:
		return l.label()
	case c == '[':
		return l.indirect()
	case c == '#':
		return l.number(hexLit)
	case c == '$':
		return l.number(binaryLit)
	case c >= '0' && c <= '9':
		return l.number(decimalLit)
	case c >= 'A' && c <= 'Z':
		return l.identifier(), nil
	case c == '"' || c == '\'':
		return l.text(c)
	}

	l.pos++
	return token{kind: tokChar, n: int(c)}, nil
}

/// A label definition is '.' followed by a name that isn't reserved.
///
func (l *lexer) label() (token, error) {
	l.pos++

	if l.pos < len(l.src) && l.src[l.pos] >= 'A' && l.src[l.pos] <= 'Z' {
		if t := l.identifier(); t.kind == tokRef {
			return token{kind: tokLabel, s: t.s}, nil
		}
	}

	return token{}, errors.New("expected label")
}

/// Scan an identifier: mnemonic, register, keyword or label reference.
///
func (l *lexer) identifier() token {
	start := l.pos

	for ; l.pos < len(l.src); l.pos++ {
		c := l.src[l.pos]

		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			break
		}
	}

	id := string(l.src[start:l.pos])

	if len(id) == 2 && id[0] == 'V' {
		if n := strings.IndexByte(hexLit.digits, id[1]); n >= 0 {
			return token{kind: tokV, n: n}
		}
	}

	if kind, ok := keywords[id]; ok {
		return token{kind: kind}
	}

	if _, ok := encoders[id]; ok {
		return token{kind: tokMnemonic, s: id}
	}

	return token{kind: tokRef, s: id}
}

/// Only [I] can be used indirectly.
///
func (l *lexer) indirect() (token, error) {
	l.pos++

	if t, err := l.next(); err != nil || t.kind != tokI {
		return token{}, errors.New("illegal indirection")
	}

	if t, err := l.next(); err != nil || t.kind != tokChar || t.n != ']' {
		return token{}, errors.New("illegal indirection")
	}

	return token{kind: tokIndirect}, nil
}

/// Scan a number literal in the given radix.
///
func (l *lexer) number(r radix) (token, error) {
	start := l.pos

	for l.pos += r.prefix; l.pos < len(l.src); l.pos++ {
		if strings.IndexByte(r.digits, l.src[l.pos]) < 0 {
			break
		}
	}

	digits := strings.ReplaceAll(string(l.src[start+r.prefix:l.pos]), ".", "0")

	n, err := strconv.ParseInt(digits, r.base, 32)
	if err != nil {
		return token{}, fmt.Errorf("illegal %s value: %s", r.name, l.src[start:l.pos])
	}

	return token{kind: tokNum, n: int(n)}, nil
}

/// Scan text between a pair of quotes.
///
func (l *lexer) text(quote byte) (token, error) {
	l.pos++

	end := strings.IndexByte(string(l.src[l.pos:]), quote)
	if end < 0 {
		return token{}, errors.New("unterminated string")
	}

	s := string(l.src[l.pos : l.pos+end])

	// skip the closing quote
	l.pos += end + 1

	return token{kind: tokText, s: s}, nil
}
