package safecalc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/safecalc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("sqrt(-1)")
	f.Add("-7 // 0.5 % 3")
	f.Add("exp(log(1e300, 0.5))")
	f.Fuzz(func(t *testing.T, s string) {
		r, err := safecalc.EvalString(s)
		if err == nil {
			safecalc.Format(r)
			return
		}
		if r != 0 && !math.IsNaN(r) {
			t.Errorf("%q gave result %g with error %v", s, r, err)
		}
		var (
			in safecalc.InputError
			ev safecalc.EvalError
		)
		if !errors.As(err, &in) && !errors.As(err, &ev) {
			t.Errorf("%q gave unclassified error %#v", s, err)
		}
	})
}
