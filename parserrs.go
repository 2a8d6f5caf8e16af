package calc

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the errors that tokenizing and evaluating can return.
// An ErrorKind is itself an error, and every error this package returns
// matches its kind with errors.Is, e.g. errors.Is(err, DivisionByZero).
type ErrorKind int8

const (
	// InvalidNumber is a run of digits, points, and exponent characters
	// that is not a number, e.g. "1e" or ".".
	InvalidNumber ErrorKind = iota + 1
	// UnknownCharacter is a character that cannot begin any token.
	UnknownCharacter
	// DivisionByZero is a division or remainder with a zero divisor.
	DivisionByZero
	// ZeroRootDegree is a root of degree zero.
	ZeroRootDegree
	// EvenRootOfNegative is an even root of a negative number.
	EvenRootOfNegative
	// OutOfDomain is a function argument outside the function's domain.
	OutOfDomain
	// UnknownFunction is a call to a name that is not a function.
	UnknownFunction
	// MissingParentheses is a function name without an argument list.
	MissingParentheses
	// UnclosedParenthesis is an open parenthesis without a matching close.
	UnclosedParenthesis
	// UnexpectedToken is a token, or the end of input, where a value or a
	// separator was required.
	UnexpectedToken
	// TrailingTokens is input left over after a complete expression.
	TrailingTokens
	// EmptyInput is input with no tokens at all.
	EmptyInput
	// WrongArity is a function call with an unacceptable argument count.
	WrongArity
)

var errorKindText = [...]string{
	InvalidNumber:       "invalid number",
	UnknownCharacter:    "unknown character",
	DivisionByZero:      "division by zero",
	ZeroRootDegree:      "root degree cannot be zero",
	EvenRootOfNegative:  "even root of negative number",
	OutOfDomain:         "argument outside domain",
	UnknownFunction:     "unknown function",
	MissingParentheses:  "function requires parentheses",
	UnclosedParenthesis: "missing closing parenthesis",
	UnexpectedToken:     "unexpected token",
	TrailingTokens:      "unexpected tokens at end of expression",
	EmptyInput:          "no expression",
	WrongArity:          "wrong number of arguments",
}

func (k ErrorKind) Error() string {
	if k <= 0 || int(k) >= len(errorKindText) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return errorKindText[k]
}

// KindOf returns the kind of an error returned from this package. The result
// is zero if err is not one of this package's errors.
func KindOf(err error) ErrorKind {
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	var ie InputError
	if errors.As(err, &ie) {
		return ie.Kind()
	}
	return 0
}

func iskind(k ErrorKind, target error) bool {
	t, ok := target.(ErrorKind)
	return ok && t == k
}

// ArithError is an error from an operator applied to operands it cannot
// handle. It implements InputError.
type ArithError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator.
	Op string
	// Reason is DivisionByZero, ZeroRootDegree, or EvenRootOfNegative.
	Reason ErrorKind
	// X and Y are the left and right operands.
	X, Y float64
}

func (err *ArithError) Error() string {
	return errpos(err.Col, err.Reason.Error()+" in "+FormatNumber(err.X)+" "+err.Op+" "+FormatNumber(err.Y))
}

func (err *ArithError) Pos() int {
	return err.Col
}

func (err *ArithError) Kind() ErrorKind {
	return err.Reason
}

func (err *ArithError) Is(target error) bool {
	return iskind(err.Reason, target)
}

// CallError is an error indicating a bad use of a function name. It
// implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name as written.
	Func string
	// Len is the number of arguments in the call.
	Len int
	// Reason is UnknownFunction, MissingParentheses, or WrongArity.
	Reason ErrorKind
}

func (err *CallError) Error() string {
	switch err.Reason {
	case UnknownFunction:
		return errpos(err.Col, "unknown function "+strconv.Quote(err.Func))
	case MissingParentheses:
		return errpos(err.Col, "function "+strconv.Quote(err.Func)+" requires parentheses")
	default:
		return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
	}
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Kind() ErrorKind {
	return err.Reason
}

func (err *CallError) Is(target error) bool {
	return iskind(err.Reason, target)
}

// BracketError is an error indicating an open parenthesis that was never
// closed. It implements InputError.
type BracketError struct {
	// Col is the position where the close parenthesis was expected.
	Col int
	// Open is the position of the open parenthesis.
	Open int
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "open bracket ( at "+strconv.Itoa(err.Open)+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Kind() ErrorKind {
	return UnclosedParenthesis
}

func (err *BracketError) Is(target error) bool {
	return iskind(UnclosedParenthesis, target)
}

// TokenError is an error indicating a token that cannot appear where it
// does. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the token. It is empty at the end of input.
	Token string
	// Trailing indicates that the token follows a complete expression.
	Trailing bool
}

func (err *TokenError) Error() string {
	if err.Trailing {
		return errpos(err.Col, "unexpected "+strconv.Quote(err.Token)+" after expression")
	}
	if err.Token == "" {
		return errpos(err.Col, "unexpected end of input")
	}
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Kind() ErrorKind {
	if err.Trailing {
		return TrailingTokens
	}
	return UnexpectedToken
}

func (err *TokenError) Is(target error) bool {
	return iskind(err.Kind(), target)
}

// EmptyExpressionError is an error indicating input with no tokens.
type EmptyExpressionError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Kind() ErrorKind {
	return EmptyInput
}

func (err *EmptyExpressionError) Is(target error) bool {
	return iskind(EmptyInput, target)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the column of the token that caused the error.
	Pos() int
	// Kind returns the classification of the error.
	Kind() ErrorKind
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ArithError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
