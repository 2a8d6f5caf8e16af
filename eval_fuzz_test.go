//go:build go1.18
// +build go1.18

package calc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("2 + 3 * 4")
	f.Add("-4 r 2")
	f.Add("comb(8, 3)")
	f.Add("sin(")
	f.Add("1e")
	f.Add("1Ã—2")
	f.Fuzz(func(t *testing.T, s string) {
		a, as, aerr := calc.EvalString(s, true)
		b, _, berr := calc.EvalString(s, false)
		if (aerr == nil) != (berr == nil) {
			t.Fatalf("%q: details changed the error: %v, %v", s, aerr, berr)
		}
		if aerr != nil {
			if calc.KindOf(aerr) == 0 {
				t.Errorf("%q: error %v has no kind", s, aerr)
			}
			var ie calc.InputError
			if !errors.As(aerr, &ie) || ie.Pos() < 1 {
				t.Errorf("%q: error %v has no position", s, aerr)
			}
			return
		}
		if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
			t.Errorf("%q: details changed the result: %v, %v", s, a, b)
		}
		if len(as) > 0 {
			last := as[len(as)-1].Result
			if last != a && !(math.IsNaN(last) && math.IsNaN(a)) {
				t.Errorf("%q: last step %v does not give result %v", s, as[len(as)-1], a)
			}
		}
	})
}
