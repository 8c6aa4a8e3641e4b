package safecalc

import (
	"strconv"
	"strings"
)

// Node is a node in the syntax tree of an expression. The set of node types
// is closed: *Num, *Const, *Unary, *Binary, and *Call. Nodes are never
// modified after parsing, and no node is shared between two parents.
type Node interface {
	// String renders the node fully parenthesized, e.g. "(2 ** (3 ** 1))".
	String() string
	fmt(b *strings.Builder)
	node()
}

// Num is a numeric literal.
type Num struct {
	// Value is the parsed value of the literal.
	Value float64
	// Text is the literal as written.
	Text string
}

// Const is a reference to a named constant. The name is resolved during
// evaluation, not parsing.
type Const struct {
	Name string
}

// Unary is a prefix + or - applied to an operand.
type Unary struct {
	Op UnaryOp
	X  Node
}

// Binary is an infix operator applied to two operands.
type Binary struct {
	Op          BinaryOp
	Left, Right Node
}

// Call is a call of a named function. Neither the name nor the number of
// arguments is checked until evaluation.
type Call struct {
	Func string
	Args []Node
}

func (*Num) node()    {}
func (*Const) node()  {}
func (*Unary) node()  {}
func (*Binary) node() {}
func (*Call) node()   {}

// UnaryOp is a prefix operator.
type UnaryOp int8

const (
	OpPlus UnaryOp = iota + 1
	OpMinus
)

func (op UnaryOp) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	default:
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// BinaryOp is an infix operator.
type BinaryOp int8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpFloorDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpFloorDiv:
		return "//"
	default:
		return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

func (n *Num) fmt(b *strings.Builder) {
	b.WriteString(n.Text)
}

func (n *Const) fmt(b *strings.Builder) {
	b.WriteString(n.Name)
}

func (n *Unary) fmt(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Op.String())
	n.X.fmt(b)
	b.WriteByte(')')
}

func (n *Binary) fmt(b *strings.Builder) {
	b.WriteByte('(')
	n.Left.fmt(b)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	n.Right.fmt(b)
	b.WriteByte(')')
}

func (n *Call) fmt(b *strings.Builder) {
	b.WriteString(n.Func)
	b.WriteByte('(')
	for i, arg := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.fmt(b)
	}
	b.WriteByte(')')
}

func (n *Num) String() string    { return nodeString(n) }
func (n *Const) String() string  { return nodeString(n) }
func (n *Unary) String() string  { return nodeString(n) }
func (n *Binary) String() string { return nodeString(n) }
func (n *Call) String() string   { return nodeString(n) }

func nodeString(n Node) string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}
