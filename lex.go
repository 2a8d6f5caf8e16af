package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the kind of token.
	Kind TokenKind
	// Text is the token as it appeared in the input.
	Text string
	// Num is the value of a TokenNum. It is zero for other kinds.
	Num float64
	// Pos is the column of the first rune of the token, counting from 1.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind identifies the kind of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a real number.
	TokenNum
	// TokenOp is one of the operators in Operators.
	TokenOp
	// TokenIdent is a function or constant name.
	TokenIdent
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenSep is a function argument separator, i.e. a comma.
	TokenSep
)

var tokenKindNames = [...]string{
	tokenNone:  "None",
	TokenNum:   "Num",
	TokenOp:    "Op",
	TokenIdent: "Ident",
	TokenOpen:  "Open",
	TokenClose: "Close",
	TokenSep:   "Sep",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators is the set of operator runes. The letter r is the root operator,
// so it can never begin a function or constant name.
const Operators = "+-*/^%r"

// Tokenize splits src into tokens. Spaces and tabs separate tokens and are
// otherwise ignored. The result is empty, with no error, if src holds nothing
// but spaces and tabs.
func Tokenize(src string) ([]Token, error) {
	scan := lex(strings.NewReader(src))
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads the next rune and advances the column.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune steps back one rune. It panics if the source refuses, which
// cannot happen directly after a successful readRune.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.rune}
		switch {
		case r == ' ', r == '\t':
			continue
		case r == '(':
			tok.Text, tok.Kind = "(", TokenOpen
		case r == ')':
			tok.Text, tok.Kind = ")", TokenClose
		case r == ',':
			tok.Text, tok.Kind = ",", TokenSep
		case strings.ContainsRune(Operators, r):
			tok.Text, tok.Kind = string(r), TokenOp
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			v, err := strconv.ParseFloat(tok.Text, 64)
			// Out of range values are still well-formed. ParseFloat gives
			// the nearest infinity or zero for them.
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return tok, l.error(tok.Pos, InvalidNumber)
			}
			tok.Num = v
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
		default:
			// The error text is the offending rune itself.
			l.buf.WriteRune(r)
			return tok, l.error(tok.Pos, UnknownCharacter)
		}
		return tok, nil
	}
}

// scanNum scans digits with at most one decimal point and at most one
// exponent marker. A sign directly after the exponent marker belongs to the
// number. Whether the result is actually a number is left to the caller.
func (l *lexer) scanNum() error {
	var dot, exp bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
		case r == '.' && !dot:
			dot = true
		case (r == 'e' || r == 'E') && !exp:
			exp = true
			l.buf.WriteRune(r)
			s, err := l.readRune()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			if s == '+' || s == '-' {
				l.buf.WriteRune(s)
			} else {
				l.unreadRune()
			}
			continue
		default:
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The first letter was pushed back by next, so the name is
				// never empty here.
				return nil
			}
			return err
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) error(col int, kind ErrorKind) error {
	return &LexError{
		Text:   l.buf.String(),
		Reason: kind,
		Col:    col,
	}
}

// LexError is a malformed number or a character no token can begin with.
// It implements InputError.
type LexError struct {
	// Text is the malformed number, or the unknown character.
	Text string
	// Reason is InvalidNumber or UnknownCharacter.
	Reason ErrorKind
	// Col is the column of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Reason.Error()+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Kind() ErrorKind {
	return err.Reason
}

func (err *LexError) Is(target error) bool {
	return iskind(err.Reason, target)
}
