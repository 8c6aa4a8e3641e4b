package safecalc

import (
	"errors"
	"fmt"
	"math"
)

// Func describes one function an expression may call. The only way to
// obtain a Func is LookupFunc, so the only functions that can ever run are
// those in the table below.
type Func struct {
	// Name is the name expressions use to call the function.
	Name string
	// MinArgs and MaxArgs bound the number of arguments the function accepts.
	MinArgs, MaxArgs int

	// f computes the result. args has a length accepted by CanCall.
	f func(args []float64) (float64, error)
	// overflow is the error detail reported when finite arguments produce an
	// infinite result, or "" if that is a legitimate result.
	overflow string
}

// degree is one degree in radians, and radian is one radian in degrees.
// Both are computed from the float64 value of pi.
const (
	degree = float64(math.Pi) / 180
	radian = 180 / float64(math.Pi)
)

const (
	domainError = "math domain error"
	rangeError  = "math range error"
)

// functions is the table of functions an expression may call. It is never
// modified after initialization.
var functions = map[string]Func{
	"sqrt":    monadic("sqrt", math.Sqrt, ""),
	"sin":     monadic("sin", math.Sin, ""),
	"cos":     monadic("cos", math.Cos, ""),
	"tan":     monadic("tan", math.Tan, ""),
	"asin":    monadic("asin", math.Asin, ""),
	"acos":    monadic("acos", math.Acos, ""),
	"atan":    monadic("atan", math.Atan, ""),
	"sinh":    monadic("sinh", math.Sinh, rangeError),
	"cosh":    monadic("cosh", math.Cosh, rangeError),
	"tanh":    monadic("tanh", math.Tanh, ""),
	"exp":     monadic("exp", math.Exp, rangeError),
	"log10":   monadic("log10", math.Log10, domainError),
	"abs":     monadic("abs", math.Abs, ""),
	"degrees": monadic("degrees", func(x float64) float64 { return x * radian }, ""),
	"radians": monadic("radians", func(x float64) float64 { return x * degree }, ""),
	"ceil":    integral("ceil", math.Ceil),
	"floor":   integral("floor", math.Floor),
	"round":   integral("round", math.RoundToEven),
	"log": {
		Name:     "log",
		MinArgs:  1,
		MaxArgs:  2,
		f:        logb,
		overflow: domainError,
	},
}

var funcnames = setlist(func() map[string]bool {
	m := make(map[string]bool, len(functions))
	for k := range functions {
		m[k] = true
	}
	return m
}())

// LookupFunc returns the function with the given name.
func LookupFunc(name string) (Func, bool) {
	f, ok := functions[name]
	return f, ok
}

// FuncNames returns the names of all functions, sorted.
func FuncNames() []string {
	return append(([]string)(nil), funcnames...)
}

// CanCall returns whether the function can be called with n arguments.
func (f Func) CanCall(n int) bool {
	return f.MinArgs <= n && n <= f.MaxArgs
}

// Call applies the function to args. A wrong number of arguments is an
// *ArityError. A NaN result from arguments that are not NaN, an infinite
// result from finite arguments where that means overflow, and a panic in the
// implementation are all reported as *ArithmeticError.
func (f Func) Call(args []float64) (r float64, err error) {
	if !f.CanCall(len(args)) {
		return 0, &ArityError{Func: f.Name, Min: f.MinArgs, Max: f.MaxArgs, Got: len(args)}
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		r, err = 0, &ArithmeticError{Func: f.Name, Detail: fmt.Sprint(p)}
	}()
	r, err = f.f(args)
	if err != nil {
		return 0, &ArithmeticError{Func: f.Name, Detail: err.Error()}
	}
	switch {
	case math.IsNaN(r) && !anyNaN(args):
		return 0, &ArithmeticError{Func: f.Name, Detail: domainError}
	case math.IsInf(r, 0) && f.overflow != "" && allFinite(args):
		return 0, &ArithmeticError{Func: f.Name, Detail: f.overflow}
	}
	return r, nil
}

// monadic wraps a function of one variable into a Func.
func monadic(name string, f func(float64) float64, overflow string) Func {
	return Func{
		Name:     name,
		MinArgs:  1,
		MaxArgs:  1,
		f:        func(args []float64) (float64, error) { return f(args[0]), nil },
		overflow: overflow,
	}
}

// integral wraps a rounding function, which has no integer to give for an
// infinite or NaN argument.
func integral(name string, f func(float64) float64) Func {
	return Func{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		f: func(args []float64) (float64, error) {
			x := args[0]
			switch {
			case math.IsInf(x, 0):
				return 0, errors.New("cannot convert float infinity to integer")
			case math.IsNaN(x):
				return 0, errors.New("cannot convert float NaN to integer")
			}
			return f(x), nil
		},
	}
}

// logb is the natural logarithm, or the logarithm to a base given as the
// second argument.
func logb(args []float64) (float64, error) {
	r := math.Log(args[0])
	if len(args) == 1 {
		return r, nil
	}
	if args[1] <= 0 {
		return math.NaN(), nil
	}
	b := math.Log(args[1])
	if b == 0 {
		return 0, errors.New("float division by zero")
	}
	return r / b, nil
}

func anyNaN(args []float64) bool {
	for _, x := range args {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

func allFinite(args []float64) bool {
	for _, x := range args {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}
