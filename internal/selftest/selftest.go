// Package selftest checks the calculator against a table of known results.
package selftest

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/safecalc"
)

// Tolerance is the largest difference from the expected value that passes.
const Tolerance = 1e-9

// Case is an expression and its expected value.
type Case struct {
	Expr string
	Want float64
}

// Cases is the built-in check table.
var Cases = []Case{
	// arithmetic
	{"1+2*3", 7},
	{"(1+2)*3", 9},
	{"2**3**1", 8},
	{"4/2", 2},
	{"5%2", 1},
	{"-3 + 7", 4},
	{"9//2", 4},
	// functions
	{"sqrt(16)", 4},
	{"sin(0)", 0},
	{"abs(-5)", 5},
	{"ceil(3.2)", 4},
	{"floor(3.8)", 3},
	{"round(3.7)", 4},
	// constants
	{"pi/pi", 1},
	{"e/e", 1},
	// more functions
	{"log10(100)", 2},
	{"exp(0)", 1},
	{"degrees(pi)", 180},
}

// Result is the outcome of one case.
type Result struct {
	Case
	// Got is the evaluated value, if Err is nil.
	Got float64
	// Err is the evaluation error, if any.
	Err error
}

// OK returns whether the case passed.
func (r Result) OK() bool {
	return r.Err == nil && math.Abs(r.Got-r.Want) <= Tolerance
}

// Check evaluates every case concurrently and returns the results in the
// same order as cases.
func Check(ctx context.Context, cases []Case) ([]Result, error) {
	res := make([]Result, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			got, err := safecalc.EvalString(c.Expr)
			res[i] = Result{Case: c, Got: got, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Run checks cases and writes one line per case to w. The error lists every
// failed case.
func Run(ctx context.Context, cases []Case, w io.Writer) error {
	res, err := Check(ctx, cases)
	if err != nil {
		return errors.Wrap(err, "running self-test")
	}
	var fails *multierror.Error
	for _, r := range res {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "FAIL: %s -> error: %v\n", r.Expr, r.Err)
			fails = multierror.Append(fails, errors.Wrap(r.Err, r.Expr))
		case !r.OK():
			fmt.Fprintf(w, "FAIL: %s = %s (expected %s)\n", r.Expr, safecalc.Format(r.Got), safecalc.Format(r.Want))
			fails = multierror.Append(fails, errors.Errorf("%s = %s, expected %s", r.Expr, safecalc.Format(r.Got), safecalc.Format(r.Want)))
		default:
			fmt.Fprintf(w, "OK:   %s = %s\n", r.Expr, safecalc.Format(r.Got))
		}
	}
	return fails.ErrorOrNil()
}
