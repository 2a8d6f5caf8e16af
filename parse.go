package calc

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

// expr    = term { ('+' | '-') term }
// term    = factor { ('*' | '/' | '%') factor }
// factor  = power [ 'r' power ]
// power   = unary [ '^' power ]
// unary   = { '+' | '-' } primary
// primary = num | '(' expr ')' | const | name '(' [ expr { ',' expr } ] ')'

// Each parse function evaluates what it parses as it goes. It receives the
// index of the first token it may consume and returns the value along with
// the index of the first token it did not consume. The trace is the only
// state shared between calls.

// parse evaluates a complete expression.
func parse(toks []Token, tr *Trace) (float64, error) {
	if len(toks) == 0 {
		return 0, &EmptyExpressionError{Col: 1}
	}
	v, pos, err := parseexpr(toks, 0, tr)
	if err != nil {
		return 0, err
	}
	if pos < len(toks) {
		return 0, &TokenError{Col: toks[pos].Pos, Token: toks[pos].Text, Trailing: true}
	}
	return v, nil
}

func parseexpr(toks []Token, pos int, tr *Trace) (float64, int, error) {
	l, pos, err := parseterm(toks, pos, tr)
	if err != nil {
		return 0, pos, err
	}
	for isop(toks, pos, "+-") {
		op := toks[pos].Text
		r, next, err := parseterm(toks, pos+1, tr)
		if err != nil {
			return 0, next, err
		}
		v := l + r
		if op == "-" {
			v = l - r
		}
		tr.binary(l, op, r, v)
		l, pos = v, next
	}
	return l, pos, nil
}

func parseterm(toks []Token, pos int, tr *Trace) (float64, int, error) {
	l, pos, err := parsefactor(toks, pos, tr)
	if err != nil {
		return 0, pos, err
	}
	for isop(toks, pos, "*/%") {
		op := toks[pos]
		r, next, err := parsefactor(toks, pos+1, tr)
		if err != nil {
			return 0, next, err
		}
		var v float64
		switch op.Text {
		case "*":
			v = l * r
		case "/":
			if r == 0 {
				return 0, next, &ArithError{Col: op.Pos, Op: op.Text, Reason: DivisionByZero, X: l, Y: r}
			}
			v = l / r
		case "%":
			// Remainder is on the operands truncated to integers, not a
			// floating-point remainder.
			d := int64(r)
			if d == 0 {
				return 0, next, &ArithError{Col: op.Pos, Op: op.Text, Reason: DivisionByZero, X: l, Y: r}
			}
			v = float64(int64(l) % d)
		}
		tr.binary(l, op.Text, r, v)
		l, pos = v, next
	}
	return l, pos, nil
}

func parsefactor(toks []Token, pos int, tr *Trace) (float64, int, error) {
	x, pos, err := parsepower(toks, pos, tr)
	if err != nil {
		return 0, pos, err
	}
	if !isop(toks, pos, "r") {
		return x, pos, nil
	}
	op := toks[pos]
	n, pos, err := parsepower(toks, pos+1, tr)
	if err != nil {
		return 0, pos, err
	}
	if n == 0 {
		return 0, pos, &ArithError{Col: op.Pos, Op: op.Text, Reason: ZeroRootDegree, X: x, Y: n}
	}
	// The degree is even if it has no remainder mod 2 as a float, so 4.0
	// counts but 4.0000001 does not.
	if x < 0 && math.Mod(n, 2) == 0 {
		return 0, pos, &ArithError{Col: op.Pos, Op: op.Text, Reason: EvenRootOfNegative, X: x, Y: n}
	}
	v := math.Pow(x, 1/n)
	tr.binary(x, op.Text, n, v)
	return v, pos, nil
}

func parsepower(toks []Token, pos int, tr *Trace) (float64, int, error) {
	l, pos, err := parseunary(toks, pos, tr)
	if err != nil {
		return 0, pos, err
	}
	if !isop(toks, pos, "^") {
		return l, pos, nil
	}
	// Recursing on the right makes ^ right-associative.
	r, pos, err := parsepower(toks, pos+1, tr)
	if err != nil {
		return 0, pos, err
	}
	v := math.Pow(l, r)
	tr.binary(l, "^", r, v)
	return v, pos, nil
}

func parseunary(toks []Token, pos int, tr *Trace) (float64, int, error) {
	var neg, signed bool
	for isop(toks, pos, "+-") {
		if toks[pos].Text == "-" {
			neg = !neg
			signed = true
		}
		pos++
	}
	v, pos, err := parseprimary(toks, pos, tr)
	if err != nil {
		return 0, pos, err
	}
	if neg {
		v = -v
	}
	if signed {
		tr.sign(neg, v)
	}
	return v, pos, nil
}

func parseprimary(toks []Token, pos int, tr *Trace) (float64, int, error) {
	if pos >= len(toks) {
		return 0, pos, &TokenError{Col: colat(toks, pos)}
	}
	tok := toks[pos]
	switch tok.Kind {
	case TokenNum:
		return tok.Num, pos + 1, nil
	case TokenOpen:
		v, next, err := parseexpr(toks, pos+1, tr)
		if err != nil {
			return 0, next, err
		}
		if next >= len(toks) || toks[next].Kind != TokenClose {
			return 0, next, &BracketError{Col: colat(toks, next), Open: tok.Pos}
		}
		return v, next + 1, nil
	case TokenIdent:
		return parseident(toks, pos, tr)
	default:
		return 0, pos, &TokenError{Col: tok.Pos, Token: tok.Text}
	}
}

// parseident parses a constant or a function call.
func parseident(toks []Token, pos int, tr *Trace) (float64, int, error) {
	tok := toks[pos]
	name := strings.ToLower(tok.Text)
	if v, ok := constants[name]; ok {
		tr.Record(name, v)
		return v, pos + 1, nil
	}
	pos++
	if pos >= len(toks) || toks[pos].Kind != TokenOpen {
		return 0, pos, &CallError{Col: tok.Pos, Func: tok.Text, Reason: MissingParentheses}
	}
	args, pos, err := parseargs(toks, pos+1, tr, toks[pos].Pos)
	if err != nil {
		return 0, pos, err
	}
	fn, ok := functions[name]
	if !ok {
		return 0, pos, &CallError{Col: tok.Pos, Func: tok.Text, Len: len(args), Reason: UnknownFunction}
	}
	if !fn.arity.canCall(len(args)) {
		return 0, pos, &CallError{Col: tok.Pos, Func: name, Len: len(args), Reason: WrongArity}
	}
	v, err := fn.call(args)
	if err != nil {
		var de *DomainError
		if errors.As(err, &de) {
			de.Col, de.Func = tok.Pos, name
		}
		return 0, pos, err
	}
	tr.call(name, args, v)
	return v, pos, nil
}

// parseargs parses an argument list, starting after the open parenthesis at
// column open and consuming the close parenthesis.
func parseargs(toks []Token, pos int, tr *Trace, open int) ([]float64, int, error) {
	if pos >= len(toks) {
		return nil, pos, &BracketError{Col: colat(toks, pos), Open: open}
	}
	if toks[pos].Kind == TokenClose {
		return nil, pos + 1, nil
	}
	var args []float64
	for {
		v, next, err := parseexpr(toks, pos, tr)
		if err != nil {
			return nil, next, err
		}
		args = append(args, v)
		if next >= len(toks) {
			return nil, next, &BracketError{Col: colat(toks, next), Open: open}
		}
		switch tok := toks[next]; tok.Kind {
		case TokenClose:
			return args, next + 1, nil
		case TokenSep:
			pos = next + 1
		default:
			return nil, next, &TokenError{Col: tok.Pos, Token: tok.Text}
		}
	}
}

// isop reports whether the token at pos is one of the operators in ops.
func isop(toks []Token, pos int, ops string) bool {
	return pos < len(toks) && toks[pos].Kind == TokenOp && strings.Contains(ops, toks[pos].Text)
}

// colat gives the column of the token at pos, or the column just past the
// last token if pos is at the end.
func colat(toks []Token, pos int) int {
	if pos < len(toks) {
		return toks[pos].Pos
	}
	if len(toks) == 0 {
		return 1
	}
	last := toks[len(toks)-1]
	return last.Pos + utf8.RuneCountInString(last.Text)
}
