package calc

import (
	"math"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// arity is the range of argument counts a function accepts. A negative max
// means there is no upper limit.
type arity struct {
	min, max int
}

func (a arity) canCall(n int) bool {
	return n >= a.min && (a.max < 0 || n <= a.max)
}

// function is an entry in the function table. The parser checks the arity
// before calling, so call always receives an acceptable number of arguments.
// If an argument is outside the function's domain, call returns a
// *DomainError; the parser fills in its position and function name.
type function struct {
	arity arity
	call  func(args []float64) (float64, error)
}

var functions = map[string]function{
	// trig, in degrees
	"sin":  monadic(func(x float64) float64 { return math.Sin(radians(x)) }),
	"cos":  monadic(func(x float64) float64 { return math.Cos(radians(x)) }),
	"tan":  monadic(func(x float64) float64 { return math.Tan(radians(x)) }),
	"asin": bounded(func(x float64) float64 { return degrees(math.Asin(x)) }, outside(-1, 1), "asin domain: [-1, 1]"),
	"acos": bounded(func(x float64) float64 { return degrees(math.Acos(x)) }, outside(-1, 1), "acos domain: [-1, 1]"),
	"atan": monadic(func(x float64) float64 { return degrees(math.Atan(x)) }),

	// exponential
	"ln":  bounded(math.Log, nonpositive, "ln domain: positive numbers"),
	"log": bounded(math.Log10, nonpositive, "log domain: positive numbers"),
	"exp": monadic(math.Exp),

	// basic
	"abs":   monadic(math.Abs),
	"floor": monadic(math.Floor),
	"ceil":  monadic(math.Ceil),
	"round": monadic(math.Round),
	"sqrt":  bounded(math.Sqrt, func(x float64) bool { return x < 0 }, "sqrt domain: non-negative numbers"),

	// hyperbolic
	"sinh":  monadic(math.Sinh),
	"cosh":  monadic(math.Cosh),
	"tanh":  monadic(math.Tanh),
	"asinh": monadic(math.Asinh),
	"acosh": bounded(math.Acosh, func(x float64) bool { return x < 1 }, "acosh domain: x >= 1"),
	"atanh": bounded(math.Atanh, func(x float64) bool { return x <= -1 || x >= 1 }, "atanh domain: |x| < 1"),

	// combinatorics
	"fact":      {arity{1, 1}, factorial},
	"factorial": {arity{1, 1}, factorial},
	"perm":      {arity{2, 2}, permutations},
	"npr":       {arity{2, 2}, permutations},
	"comb":      {arity{2, 2}, combinations},
	"ncr":       {arity{2, 2}, combinations},

	// statistics
	"mean":   variadic(1, mean),
	"median": variadic(1, median),
	"stdev":  variadic(2, stdev),
	"stddev": variadic(2, stdev),
}

// constants are the names that evaluate without a call.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Functions returns the sorted names of all functions.
func Functions() []string {
	names := maps.Keys(functions)
	slices.Sort(names)
	return names
}

// Constants returns the sorted names of all constants.
func Constants() []string {
	names := maps.Keys(constants)
	slices.Sort(names)
	return names
}

// monadic wraps a function of one variable defined on all reals.
func monadic(f func(float64) float64) function {
	return function{
		arity: arity{1, 1},
		call: func(args []float64) (float64, error) {
			return f(args[0]), nil
		},
	}
}

// bounded wraps a function of one variable that is undefined wherever bad
// reports true. msg describes the domain.
func bounded(f func(float64) float64, bad func(float64) bool, msg string) function {
	return function{
		arity: arity{1, 1},
		call: func(args []float64) (float64, error) {
			if bad(args[0]) {
				return 0, &DomainError{X: args[0], Arg: 1, Msg: msg}
			}
			return f(args[0]), nil
		},
	}
}

// variadic wraps a function of at least min variables.
func variadic(min int, f func([]float64) float64) function {
	return function{
		arity: arity{min, -1},
		call: func(args []float64) (float64, error) {
			return f(args), nil
		},
	}
}

// outside returns a predicate reporting whether x is outside [lo, hi]. NaN
// is not outside anything.
func outside(lo, hi float64) func(float64) bool {
	return func(x float64) bool {
		return x < lo || x > hi
	}
}

func nonpositive(x float64) bool {
	return x <= 0
}

func radians(x float64) float64 {
	return x * (math.Pi / 180)
}

func degrees(x float64) float64 {
	return x * (180 / math.Pi)
}

// isint reports whether x is a finite integer.
func isint(x float64) bool {
	return x == math.Trunc(x) && !math.IsInf(x, 0)
}

func factorial(args []float64) (float64, error) {
	x := args[0]
	if x < 0 {
		return 0, &DomainError{X: x, Arg: 1, Msg: "factorial not defined for negative numbers"}
	}
	if !isint(x) {
		return 0, &DomainError{X: x, Arg: 1, Msg: "factorial requires integer argument"}
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
		if math.IsInf(r, 1) {
			break
		}
	}
	return r, nil
}

// choose checks the arguments to perm and comb. name is used in messages.
func choose(name string, args []float64) (n, k float64, err error) {
	n, k = args[0], args[1]
	for i, x := range args {
		if x < 0 {
			return 0, 0, &DomainError{X: x, Arg: i + 1, Msg: name + " requires non-negative integers"}
		}
		if !isint(x) {
			return 0, 0, &DomainError{X: x, Arg: i + 1, Msg: name + " requires integer arguments"}
		}
	}
	if k > n {
		return 0, 0, &DomainError{X: k, Arg: 2, Msg: "k cannot be greater than n in " + name}
	}
	return n, k, nil
}

func permutations(args []float64) (float64, error) {
	n, k, err := choose("perm", args)
	if err != nil {
		return 0, err
	}
	r := 1.0
	for i := 0.0; i < k; i++ {
		r *= n - i
		if math.IsInf(r, 1) {
			break
		}
	}
	return r, nil
}

func combinations(args []float64) (float64, error) {
	n, k, err := choose("comb", args)
	if err != nil {
		return 0, err
	}
	// Use the smaller side so the intermediate products stay small. Each
	// partial product is itself a binomial coefficient, so the division is
	// exact for as long as the values fit in the mantissa.
	k = math.Min(k, n-k)
	r := 1.0
	for i := 0.0; i < k; i++ {
		r = r * (n - i) / (i + 1)
		if math.IsInf(r, 1) {
			break
		}
	}
	return r, nil
}

func mean(args []float64) float64 {
	var s float64
	for _, x := range args {
		s += x
	}
	return s / float64(len(args))
}

func median(args []float64) float64 {
	v := slices.Clone(args)
	slices.Sort(v)
	mid := len(v) / 2
	if len(v)%2 == 0 {
		return (v[mid-1] + v[mid]) / 2
	}
	return v[mid]
}

// stdev is the sample standard deviation.
func stdev(args []float64) float64 {
	m := mean(args)
	var s float64
	for _, x := range args {
		s += (x - m) * (x - m)
	}
	return math.Sqrt(s / float64(len(args)-1))
}

// DomainError is an error returned when a function is called on arguments
// outside its domain. It implements InputError.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is the name of the function as written.
	Func string
	// Msg describes the domain of the function.
	Msg string
	// Col is the position of the function name.
	Col int
}

func (err *DomainError) Error() string {
	if err.Msg != "" {
		return errpos(err.Col, err.Msg)
	}
	r := FormatNumber(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Kind() ErrorKind {
	return OutOfDomain
}

func (err *DomainError) Is(target error) bool {
	return iskind(OutOfDomain, target)
}
