package safecalc

import (
	"strconv"
	"strings"
)

// NameError is an error indicating a name that is not a known constant.
type NameError struct {
	// Name is the undefined name.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DisallowedFunctionError is an error indicating a call to a function that is
// not in the function table, or a call of something that is not a plain name.
type DisallowedFunctionError struct {
	// Name is the name of the callee.
	Name string
}

func (err *DisallowedFunctionError) Error() string {
	return "function " + strconv.Quote(err.Name) + " is not allowed; allowed functions: " + strings.Join(funcnames, ", ")
}

// ArityError is an error indicating a call with a number of arguments the
// function does not accept.
type ArityError struct {
	// Func is the name of the function.
	Func string
	// Min and Max are the bounds on the number of arguments Func accepts.
	Min, Max int
	// Got is the number of arguments in the call.
	Got int
}

func (err *ArityError) Error() string {
	want := strconv.Itoa(err.Min)
	if err.Max != err.Min {
		want += " or " + strconv.Itoa(err.Max)
	}
	s := "s"
	if err.Got == 1 {
		s = ""
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Got) + " argument" + s + " (want " + want + ")"
}

// ArithmeticError is an error indicating a math domain or range failure in
// a function or operator.
type ArithmeticError struct {
	// Func is the function or operator that failed.
	Func string
	// Detail describes the failure.
	Detail string
}

func (err *ArithmeticError) Error() string {
	if _, ok := functions[err.Func]; ok {
		return "error calling " + err.Func + ": " + err.Detail
	}
	return "error evaluating " + err.Func + ": " + err.Detail
}

// EvalError is an error resulting from evaluating a syntactically valid
// expression. Every error Evaluate returns implements EvalError.
type EvalError interface {
	error
	evalError()
}

func (*NameError) evalError()               {}
func (*DisallowedFunctionError) evalError() {}
func (*ArityError) evalError()              {}
func (*ArithmeticError) evalError()         {}

var (
	_ EvalError = (*NameError)(nil)
	_ EvalError = (*DisallowedFunctionError)(nil)
	_ EvalError = (*ArityError)(nil)
	_ EvalError = (*ArithmeticError)(nil)
)
