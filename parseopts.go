package safecalc

import (
	"strconv"
)

// DefaultMaxDepth is the default limit on nested subexpressions. It matches
// the nesting limit of the Python parser.
const DefaultMaxDepth = 200

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type depthopt int

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// names is the set of constant names that have been seen this parse.
	names map[string]bool
	// funcs is the set of function names that have been called this parse.
	funcs map[string]bool
	// depth is the current number of nested terms.
	depth int
	// maxdepth is the limit on depth.
	maxdepth int
}

// enter records that the parser is starting a nested term, failing if that
// exceeds the nesting limit.
func (p *parsectx) enter(scan *lexer) error {
	p.depth++
	if p.depth > p.maxdepth {
		p.depth--
		return &NestingError{Col: scan.rune - 1, Max: p.maxdepth}
	}
	return nil
}

// leave records that the parser has finished a nested term.
func (p *parsectx) leave() {
	p.depth--
}

// MaxDepth sets the limit on nesting of parentheses, unary operators, calls,
// and chains of ** in a single expression. Deeper input is rejected with a
// NestingError instead of recursing without bound. Panics if n is not
// positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("safecalc: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}

// ParsingPreset creates a parsing preset that folds a list of options once,
// for use with many calls to Parse. It is safe to apply other options after a
// preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := parsectx{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	p.maxdepth = o.maxdepth
	return p
}
