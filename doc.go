// Package safecalc implements a calculator for arithmetic expressions that
// can only ever do arithmetic.
//
// The syntax is the arithmetic subset of Python expressions: + - * / % // **
// with unary + and -, parentheses, decimal numbers, the constants pi, e, tau,
// and inf, and calls to a fixed set of math functions such as sqrt(x) and
// log(x, base). "-2**2" is "-(2**2)", and "2**3**2" is "2**(3**2)".
//
// Parsing produces an immutable tree of five node kinds. Evaluating resolves
// names through two read-only tables, so no input can reach anything beyond
// those tables and the seven binary operators. Trees and tables carry no
// mutable state, so a parsed expression may be evaluated any number of times
// from any number of goroutines.
package safecalc
