package calc

import (
	"math"
	"strings"
)

// Step is one operation performed while evaluating an expression.
type Step struct {
	// Op describes the operation with its concrete operands, e.g. "2 + 3".
	Op string
	// Result is the value the operation produced.
	Result float64
}

// Trace records the steps of an evaluation. A Trace that is not detailed
// records nothing, and a nil *Trace is a Trace that is not detailed. A Trace
// must not be used by concurrent evaluations.
type Trace struct {
	steps    []Step
	detailed bool
}

// NewTrace creates a trace. If detailed is false, the trace never records.
func NewTrace(detailed bool) *Trace {
	return &Trace{detailed: detailed}
}

// Detailed returns whether the trace records steps.
func (t *Trace) Detailed() bool {
	return t != nil && t.detailed
}

// Record appends a step if the trace is detailed.
func (t *Trace) Record(op string, result float64) {
	if !t.Detailed() {
		return
	}
	t.steps = append(t.steps, Step{Op: op, Result: result})
}

// Steps returns the recorded steps in evaluation order.
func (t *Trace) Steps() []Step {
	if t == nil {
		return nil
	}
	return t.steps
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.steps)
}

// The helpers below build descriptions only when the trace is detailed, so
// that evaluating without details never formats numbers.

func (t *Trace) binary(l float64, op string, r, result float64) {
	if !t.Detailed() {
		return
	}
	t.Record(FormatNumber(l)+" "+op+" "+FormatNumber(r), result)
}

// sign records a folded run of unary signs. neg is the net sign.
func (t *Trace) sign(neg bool, result float64) {
	if !t.Detailed() {
		return
	}
	s := "+ "
	if neg {
		s = "- "
	}
	t.Record(s+FormatNumber(math.Abs(result)), result)
}

func (t *Trace) call(name string, args []float64, result float64) {
	if !t.Detailed() {
		return
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, x := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatNumber(x))
	}
	b.WriteByte(')')
	t.Record(b.String(), result)
}
