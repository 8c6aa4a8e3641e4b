package safecalc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/safecalc"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		want string
	}{
		{"four", 4, "4"},
		{"oneeighty", 180, "180"},
		{"zero", 0, "0"},
		{"negzero", math.Copysign(0, -1), "0"},
		{"neg", -42, "-42"},
		{"nearint", 2.0000000000001, "2"},
		{"nearintbelow", 179.99999999999997, "180"},
		{"notnearint", 2.000000001, "2.000000001"},
		{"half", 1.5, "1.5"},
		{"neghalf", -2.5, "-2.5"},
		{"tenth", 0.1, "0.1"},
		{"third", 1.0 / 3, "0.3333333333"},
		{"twothirds", 2.0 / 3, "0.6666666667"},
		{"sig", 123456.789, "123456.789"},
		{"sig8", 12345678.9, "12345678.9"},
		{"sqrt2", math.Sqrt2, "1.414213562"},
		{"pi", math.Pi, "3.141592654"},
		{"smallest-plain", 0.0001, "0.0001"},
		{"trailingzeros", 0.25, "0.25"},
		{"bigint", 1e15, "1000000000000000"},
		{"negbigint", -1e15, "-1000000000000000"},
		{"bignonint", 1e15 + 0.5, "1.000000e+15"},
		{"gexp", 1e10 + 0.5, "1e+10"},
		{"sci", 1.23e16, "1.230000e+16"},
		{"sciround", 1.2345e16, "1.234500e+16"},
		{"negsci", -2e20, "-2.000000e+20"},
		{"small", 0.00001, "1.000000e-05"},
		{"smaller", 9.5367431640625e-07, "9.536743e-07"},
		{"negsmall", -3.14159e-10, "-3.141590e-10"},
		{"tiny", 5e-324, "4.940656e-324"},
		{"max", math.MaxFloat64, "1.797693e+308"},
		{"inf", math.Inf(1), "inf"},
		{"neginf", math.Inf(-1), "-inf"},
		{"nan", math.NaN(), "nan"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, safecalc.Format(c.v))
		})
	}
}

func TestFormatScenarios(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"sqrt(16)", "4"},
		{"sin(0)", "0"},
		{"degrees(pi)", "180"},
		{"9//2", "4"},
		{"5%2", "1"},
		{"-3 + 7", "4"},
		{"2**3**1", "8"},
		{"(1+2)*3", "9"},
		{"1+2*3", "7"},
		{"pi/pi", "1"},
		{"e/e", "1"},
		{"log10(1000)", "3"},
		{"0.1+0.2", "0.3"},
		{"sin(pi)", "1.224647e-16"},
		{"2**64", "1.844674e+19"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			r, err := safecalc.EvalString(c.src)
			if assert.NoError(t, err) {
				assert.Equal(t, c.want, safecalc.Format(r))
			}
		})
	}
}
