package calc

import (
	"errors"
	"math"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
)

func TestFunctionTable(t *testing.T) {
	want := []string{
		"abs", "acos", "acosh", "asin", "asinh", "atan", "atanh",
		"ceil", "comb", "cos", "cosh", "exp", "fact", "factorial",
		"floor", "ln", "log", "mean", "median", "ncr", "npr", "perm",
		"round", "sin", "sinh", "sqrt", "stddev", "stdev", "tan", "tanh",
	}
	got := Functions()
	if !slices.Equal(got, want) {
		t.Errorf("want functions %v, got %v", want, got)
	}
	if c := Constants(); !slices.Equal(c, []string{"e", "pi"}) {
		t.Errorf("wrong constants %v", c)
	}
	for _, name := range got {
		if _, ok := constants[name]; ok {
			t.Errorf("%s is both a function and a constant", name)
		}
		if name != strings.ToLower(name) {
			t.Errorf("%s is not lower case", name)
		}
	}
}

func TestArity(t *testing.T) {
	cases := []struct {
		name string
		ok   []int
		bad  []int
	}{
		{"sin", []int{1}, []int{0, 2}},
		{"sqrt", []int{1}, []int{0, 2}},
		{"fact", []int{1}, []int{0, 2}},
		{"comb", []int{2}, []int{0, 1, 3}},
		{"perm", []int{2}, []int{1, 3}},
		{"mean", []int{1, 2, 100}, []int{0}},
		{"median", []int{1, 5}, []int{0}},
		{"stdev", []int{2, 3, 50}, []int{0, 1}},
	}
	for _, c := range cases {
		fn := functions[c.name]
		for _, n := range c.ok {
			if !fn.arity.canCall(n) {
				t.Errorf("%s should accept %d arguments", c.name, n)
			}
		}
		for _, n := range c.bad {
			if fn.arity.canCall(n) {
				t.Errorf("%s should reject %d arguments", c.name, n)
			}
		}
	}
}

func TestDomains(t *testing.T) {
	cases := []struct {
		name string
		args []float64
		msg  string
		arg  int
	}{
		{"asin", []float64{1.0001}, "asin domain: [-1, 1]", 1},
		{"acos", []float64{-2}, "acos domain: [-1, 1]", 1},
		{"ln", []float64{0}, "ln domain: positive numbers", 1},
		{"log", []float64{-3}, "log domain: positive numbers", 1},
		{"sqrt", []float64{-0.5}, "sqrt domain: non-negative numbers", 1},
		{"acosh", []float64{0}, "acosh domain: x >= 1", 1},
		{"atanh", []float64{-1}, "atanh domain: |x| < 1", 1},
		{"fact", []float64{-3}, "factorial not defined for negative numbers", 1},
		{"factorial", []float64{0.5}, "factorial requires integer argument", 1},
		{"fact", []float64{math.Inf(1)}, "factorial requires integer argument", 1},
		{"perm", []float64{5, -1}, "perm requires non-negative integers", 2},
		{"npr", []float64{2, 3}, "k cannot be greater than n in perm", 2},
		{"comb", []float64{5.5, 2}, "comb requires integer arguments", 1},
		{"ncr", []float64{-5, 2}, "comb requires non-negative integers", 1},
		{"comb", []float64{1, 2}, "k cannot be greater than n in comb", 2},
	}
	for _, c := range cases {
		_, err := functions[c.name].call(c.args)
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("%s%v: want *DomainError, got %v", c.name, c.args, err)
			continue
		}
		if de.Msg != c.msg || de.Arg != c.arg {
			t.Errorf("%s%v: want %q for argument %d, got %q for %d", c.name, c.args, c.msg, c.arg, de.Msg, de.Arg)
		}
		if !errors.Is(err, OutOfDomain) {
			t.Errorf("%s%v: error does not match OutOfDomain", c.name, c.args)
		}
	}
}

func TestDomainEdges(t *testing.T) {
	// Values exactly on the edge of each domain are inside it.
	cases := []struct {
		name string
		x    float64
		want float64
	}{
		{"acos", 1, 0},
		{"sqrt", 0, 0},
		{"acosh", 1, 0},
		{"ln", math.SmallestNonzeroFloat64, math.Log(math.SmallestNonzeroFloat64)},
	}
	for _, c := range cases {
		got, err := functions[c.name].call([]float64{c.x})
		if err != nil {
			t.Errorf("%s(%v): unexpected error %v", c.name, c.x, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s(%v): want %v, got %v", c.name, c.x, c.want, got)
		}
	}
}

func TestCombinatorics(t *testing.T) {
	cases := []struct {
		name string
		args []float64
		want float64
	}{
		{"fact", []float64{1}, 1},
		{"fact", []float64{10}, 3628800},
		{"fact", []float64{20}, 2432902008176640000},
		{"fact", []float64{1000}, math.Inf(1)},
		{"perm", []float64{7, 7}, 5040},
		{"perm", []float64{0, 0}, 1},
		{"comb", []float64{10, 9}, 10},
		{"comb", []float64{52, 5}, 2598960},
		{"comb", []float64{0, 0}, 1},
		{"perm", []float64{1e6, 1e6}, math.Inf(1)},
	}
	for _, c := range cases {
		got, err := functions[c.name].call(c.args)
		if err != nil {
			t.Errorf("%s%v: unexpected error %v", c.name, c.args, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s%v: want %v, got %v", c.name, c.args, c.want, got)
		}
	}
}

func TestStatistics(t *testing.T) {
	args := []float64{9, 1, 8, 2}
	if got := median(args); got != 5 {
		t.Errorf("median: want 5, got %v", got)
	}
	if !slices.Equal(args, []float64{9, 1, 8, 2}) {
		t.Errorf("median reordered its arguments: %v", args)
	}
	if got := mean(args); got != 5 {
		t.Errorf("mean: want 5, got %v", got)
	}
	if got := stdev([]float64{3, 3, 3}); got != 0 {
		t.Errorf("stdev of equal values: want 0, got %v", got)
	}
	if got := stdev([]float64{1, 2, 3, 4}); math.Abs(got-math.Sqrt(5.0/3)) > 1e-15 {
		t.Errorf("stdev: want %v, got %v", math.Sqrt(5.0/3), got)
	}
}

func TestNaNArguments(t *testing.T) {
	// NaN compares false with everything, so it passes range checks and
	// comes out the other side.
	for _, name := range []string{"asin", "acos", "sqrt", "ln", "log", "acosh", "atanh", "sin", "abs"} {
		got, err := functions[name].call([]float64{math.NaN()})
		if err != nil {
			t.Errorf("%s(NaN): unexpected error %v", name, err)
			continue
		}
		if !math.IsNaN(got) {
			t.Errorf("%s(NaN): want NaN, got %v", name, got)
		}
	}
}
