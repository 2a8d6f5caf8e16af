package calc

import (
	"math"
	"strconv"
)

// Evaluate evaluates tokens produced by Tokenize. If detailed is true, the
// result comes with the steps taken to reach it, in the order they were
// performed. If an error occurs, the result is 0 and the steps are nil.
func Evaluate(toks []Token, detailed bool) (float64, []Step, error) {
	tr := NewTrace(detailed)
	v, err := EvaluateTrace(toks, tr)
	if err != nil {
		return 0, nil, err
	}
	return v, tr.Steps(), nil
}

// EvaluateTrace evaluates tokens produced by Tokenize, recording steps into
// tr. tr may be nil. If an error occurs, the steps already in tr are those
// completed before the error and do not describe the whole expression.
func EvaluateTrace(toks []Token, tr *Trace) (float64, error) {
	return parse(toks, tr)
}

// EvalString is a shortcut to tokenize and evaluate an expression.
func EvalString(src string, detailed bool) (float64, []Step, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return 0, nil, err
	}
	return Evaluate(toks, detailed)
}

// FormatNumber formats a value the way results and step operands are shown:
// the shortest decimal that round-trips, never in exponent form.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
