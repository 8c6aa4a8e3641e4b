package safecalc

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Eval evaluates the expression. Evaluation has no effect on e, so the result
// is the same every time.
func (e *Expr) Eval() (float64, error) {
	return Evaluate(e.n)
}

// Evaluate computes the value of a syntax tree. Constants and functions are
// resolved only through the fixed tables; the first name or operation that
// fails stops evaluation and its error is returned.
//
// Division, modulo, and floor division by zero are not errors. They give the
// IEEE-754 results: ±Inf for x/0 and x//0, NaN for 0/0 and x%0.
func Evaluate(n Node) (float64, error) {
	switch n := n.(type) {
	case *Num:
		return n.Value, nil
	case *Const:
		v, ok := LookupConstant(n.Name)
		if !ok {
			return 0, &NameError{Name: n.Name}
		}
		return v, nil
	case *Unary:
		x, err := Evaluate(n.X)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case OpPlus:
			return x, nil
		case OpMinus:
			return -x, nil
		default:
			panic("safecalc: invalid unary operator " + n.Op.String())
		}
	case *Binary:
		l, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}
		return binary(n.Op, l, r)
	case *Call:
		// Resolve the name before touching the arguments, so nothing in a
		// disallowed call is ever evaluated. Arity is checked by Call, after
		// the arguments.
		f, ok := LookupFunc(n.Func)
		if !ok {
			return 0, &DisallowedFunctionError{Name: n.Func}
		}
		args := make([]float64, len(n.Args))
		for i, arg := range n.Args {
			x, err := Evaluate(arg)
			if err != nil {
				return 0, err
			}
			args[i] = x
		}
		return f.Call(args)
	default:
		panic(fmt.Sprintf("safecalc: invalid AST node %T", n))
	}
}

// binary applies a binary operator.
func binary(op BinaryOp, l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		return l / r, nil
	case OpMod:
		_, m := divmod(l, r)
		return m, nil
	case OpFloorDiv:
		q, _ := divmod(l, r)
		return q, nil
	case OpPow:
		return pow(l, r)
	default:
		panic("safecalc: invalid binary operator " + op.String())
	}
}

// divmod computes floored division and modulo together, so that the modulo
// has the sign of the divisor and x == q*y + m up to rounding. A zero divisor
// gives x/y and NaN.
func divmod(x, y float64) (q, m float64) {
	if y == 0 {
		return math.Floor(x / y), math.NaN()
	}
	m = math.Mod(x, y)
	// x-m is exactly a multiple of y, so this division is exact as well.
	d := (x - m) / y
	if m != 0 {
		if (y < 0) != (m < 0) {
			m += y
			d--
		}
	} else {
		m = math.Copysign(0, y)
	}
	if d == 0 {
		return math.Copysign(0, x/y), m
	}
	q = math.Floor(d)
	if d-q > 0.5 {
		q++
	}
	return q, m
}

// pow computes x**y. Results that are not real numbers are errors, as are
// zero to a negative power and overflow from finite operands.
func pow(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, &ArithmeticError{Func: "**", Detail: "zero cannot be raised to a negative power"}
	}
	r := math.Pow(x, y)
	switch {
	case math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y):
		return 0, &ArithmeticError{Func: "**", Detail: "negative number cannot be raised to a fractional power"}
	case math.IsInf(r, 0) && allFinite([]float64{x, y}):
		return 0, &ArithmeticError{Func: "**", Detail: "numerical result out of range"}
	}
	return r, nil
}

// Eval is a shortcut to parse an expression and return its result. Parse
// errors and evaluation errors are both returned as the error.
func Eval(src io.RuneScanner, opts ...ParseOption) (float64, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return a.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ParseOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}
