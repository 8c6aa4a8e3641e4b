package safecalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Expr = num | name | Call | Unary | Binary | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } [ ',' ] ] ')'
// Unary = ('+' | '-') Expr
// Binary = Expr ('+' | '-' | '*' | '/' | '%' | '//' | '**') Expr
//
// From loosest to tightest: + -, then * / % //, then unary + -, then **.
// ** is right-associative and its right operand may itself be unary, so
// 2**-1 is 2**(-1) and -2**2 is -(2**2).

// Expr is a parsed expression. It is immutable and may be evaluated any
// number of times, concurrently.
type Expr struct {
	// n is the root node of the expression.
	n Node
	// names is the list of constant names used in the expression.
	names []string
	// funcs is the list of function names called in the expression.
	funcs []string
}

// reserved are words that read as identifiers but name constructs outside
// the grammar, e.g. boolean literals, lambdas, and comparisons.
var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

// Parse parses an expression so it can be evaluated. The given options are
// applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names:    make(map[string]bool),
		funcs:    make(map[string]bool),
		maxdepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if n == nil {
		// Only a stray close bracket ends an expression before it starts.
		return nil, itShouldNotHaveEndedThisWay(scan.must())
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	ex := Expr{
		n:     n,
		names: setlist(p.names),
		funcs: setlist(p.funcs),
	}
	return &ex, nil
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

func setlist(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	r := make([]string, 0, len(set))
	for k := range set {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (Node, error) {
	if err := p.enter(scan); err != nil {
		return nil, err
	}
	defer p.leave()
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent, tokenOpen:
			// A complete operand can't be followed by another one.
			return nil, &TrailingError{Col: tok.pos, Text: tok.text}
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == 0 {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			// The right operand of ** may be unary, but nothing looser.
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, missingOperand(scan.must())
			}
			n = &Binary{Op: prec.op, Left: n, Right: rhs}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("safecalc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term, i.e. operators are unary and
// any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (Node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n Node
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only produces valid literals, but be sure.
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		// Out of range literals are ±Inf or 0, as IEEE-754 would have them.
		n = &Num{Value: v, Text: tok.text}
	case tokenIdent:
		if reserved[tok.text] {
			return nil, &ReservedError{Col: tok.pos, Word: tok.text}
		}
		next, err := scan.next()
		if err != nil {
			return nil, err
		}
		if next.kind != tokenOpen {
			scan.push(next)
			p.names[tok.text] = true
			n = &Const{Name: tok.text}
			break
		}
		args, err := parsearglist(scan, p, next)
		if err != nil {
			var lerr *LexError
			if _, ok := LookupFunc(tok.text); !ok && errors.As(err, &lerr) {
				// Arguments outside the grammar, e.g. open('x'), to a call
				// that could never run anyway.
				return nil, &DisallowedFunctionError{Name: tok.text}
			}
			return nil, err
		}
		p.funcs[tok.text] = true
		n = &Call{Func: tok.text, Args: args}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.uop == 0 {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, missingOperand(scan.must())
		}
		n = &Unary{Op: prec.uop, X: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// This might be part of a niladic call f(), so just let the caller
		// decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("safecalc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsearglist parses a parenthesized list of zero or more args. open is the
// already scanned open parenthesis. On success, the close parenthesis has been
// consumed.
func parsearglist(scan *lexer, p *parsectx, open lexToken) ([]Node, error) {
	var args []Node
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if rhs != nil {
				args = append(args, rhs)
			}
			// f() and f(a,) are fine; f(,) is caught by parselhs.
			return args, nil
		case tokenSep:
			if rhs == nil {
				return nil, &SeparatorError{Col: end.pos, Sep: end.text}
			}
			args = append(args, rhs)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open.text, Right: ""}
		default:
			panic("safecalc: parseterm ended on non-end token " + end.String())
		}
	}
}

// missingOperand returns an error for an operator with nothing after it.
// tok is the token that ended the empty operand.
func missingOperand(tok lexToken) error {
	return &EmptyExpressionError{Col: tok.pos, End: tok.text}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: "(", Right: ""}
	case tokenClose:
		// A close bracket at the end of an input has no open bracket.
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("safecalc: it really should not have ended this way: " + tok.String())
	}
}

// Root returns the root node of the parsed expression.
func (e *Expr) Root() Node {
	return e.n
}

// Names returns the constant names the expression refers to, sorted.
func (e *Expr) Names() []string {
	return append(([]string)(nil), e.names...)
}

// Funcs returns the function names the expression calls, sorted.
func (e *Expr) Funcs() []string {
	return append(([]string)(nil), e.funcs...)
}

// String renders the parsed expression with every operation parenthesized.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the binary operator to use when this operator is selected.
	op BinaryOp
	// uop is the unary operator to use when this operator is selected.
	uop UnaryOp
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of 0.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{prec: 1, op: OpAdd}
	case "-":
		return operator{prec: 1, op: OpSub}
	case "*":
		return operator{prec: 5, op: OpMul}
	case "/":
		return operator{prec: 5, op: OpDiv}
	case "%":
		return operator{prec: 5, op: OpMod}
	case "//":
		return operator{prec: 5, op: OpFloorDiv}
	case "**":
		return operator{prec: 15, right: true, op: OpPow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has a uop of 0.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{prec: 10, right: true, uop: OpPlus}
	case "-":
		return operator{prec: 10, right: true, uop: OpMinus}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{prec: -128, right: true}
