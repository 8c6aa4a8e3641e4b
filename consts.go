package safecalc

import "math"

// constants is the table of names an expression may refer to. It is never
// modified after initialization.
var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"inf": math.Inf(1),
}

var constnames = setlist(func() map[string]bool {
	m := make(map[string]bool, len(constants))
	for k := range constants {
		m[k] = true
	}
	return m
}())

// LookupConstant returns the value of a named constant.
func LookupConstant(name string) (float64, bool) {
	v, ok := constants[name]
	return v, ok
}

// ConstNames returns the names of all constants, sorted.
func ConstNames() []string {
	return append(([]string)(nil), constnames...)
}

// Constants returns a copy of the constant table.
func Constants() map[string]float64 {
	m := make(map[string]float64, len(constants))
	for k, v := range constants {
		m[k] = v
	}
	return m
}
