package calc

import (
	"strings"
	"unicode"
)

// Spacing rewrites an expression with canonical spacing for display. Binary
// operators and grouping parentheses get one space on each side. A function
// name is joined to its argument list, which has no padding inside the
// parentheses and a space after each comma. A sign is joined to what follows
// it. Spacing never fails; text that would not tokenize is spaced as well as
// it can be. Spacing(Spacing(s)) == Spacing(s) for all s.
func Spacing(s string) string {
	ps := pieces(s)
	var b strings.Builder
	// calls tracks, for each open parenthesis, whether it begins an argument
	// list.
	var calls []bool
	for i, p := range ps {
		if i > 0 && spaced(ps, i, calls) {
			b.WriteByte(' ')
		}
		b.WriteString(p.text)
		switch p.kind {
		case pieceOpen:
			calls = append(calls, i > 0 && ps[i-1].kind == pieceWord)
		case pieceClose:
			if len(calls) > 0 {
				calls = calls[:len(calls)-1]
			}
		}
	}
	return b.String()
}

// spaced reports whether a space separates ps[i-1] and ps[i].
func spaced(ps []piece, i int, calls []bool) bool {
	prev, cur := ps[i-1], ps[i]
	incall := len(calls) > 0 && calls[len(calls)-1]
	switch {
	case cur.kind == pieceSep:
		return false
	case prev.kind == pieceWord && cur.kind == pieceOpen:
		return false
	case prev.kind == pieceOpen && incall:
		return false
	case cur.kind == pieceClose && incall:
		return false
	case prev.sign:
		return false
	}
	return true
}

type pieceKind int8

const (
	pieceOther pieceKind = iota
	pieceNum
	pieceWord
	pieceOp
	pieceOpen
	pieceClose
	pieceSep
)

type piece struct {
	text string
	kind pieceKind
	// sign is whether the piece is a + or - in a position where it can only
	// be a unary sign.
	sign bool
}

// pieces splits s the way Tokenize would, except that it accepts anything.
func pieces(s string) []piece {
	var ps []piece
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		if unicode.IsSpace(r) {
			i++
			continue
		}
		j := i + 1
		p := piece{kind: pieceOther}
		switch {
		case r == '(':
			p.kind = pieceOpen
		case r == ')':
			p.kind = pieceClose
		case r == ',':
			p.kind = pieceSep
		case strings.ContainsRune(Operators, r):
			p.kind = pieceOp
			if r == '+' || r == '-' {
				p.sign = len(ps) == 0 || opens(ps[len(ps)-1].kind)
			}
		case '0' <= r && r <= '9', r == '.':
			p.kind = pieceNum
			j = numend(rs, i)
		case unicode.IsLetter(r):
			p.kind = pieceWord
			for j < len(rs) && unicode.IsLetter(rs[j]) {
				j++
			}
		}
		p.text = string(rs[i:j])
		ps = append(ps, p)
		i = j
	}
	return ps
}

// opens reports whether a piece of kind k leaves the parser expecting an
// operand, so that a following + or - is a sign.
func opens(k pieceKind) bool {
	return k == pieceOp || k == pieceOpen || k == pieceSep
}

// numend finds the end of the number starting at rs[i], by the same rules
// the lexer uses.
func numend(rs []rune, i int) int {
	var dot, exp bool
	for ; i < len(rs); i++ {
		switch r := rs[i]; {
		case '0' <= r && r <= '9':
		case r == '.' && !dot:
			dot = true
		case (r == 'e' || r == 'E') && !exp:
			exp = true
			if i+1 < len(rs) && (rs[i+1] == '+' || rs[i+1] == '-') {
				i++
			}
		default:
			return i
		}
	}
	return i
}
