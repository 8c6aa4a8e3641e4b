package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/safecalc"
)

func newTestREPL(t *testing.T, cfg Config) (*REPL, *bytes.Buffer) {
	t.Helper()
	cfg.NoColor = true
	var out bytes.Buffer
	r, err := New(cfg, &out)
	require.NoError(t, err)
	return r, &out
}

// transcript runs lines through a REPL and returns its output after the
// banner, without prompts.
func transcript(t *testing.T, r *REPL, out *bytes.Buffer, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var w bytes.Buffer
	require.NoError(t, r.Run(NewLines(in, &w)))
	s := strings.ReplaceAll(out.String(), Prompt, "")
	_, s, ok := strings.Cut(s, "'exit' to leave.\n")
	require.True(t, ok, "no banner in %q", out.String())
	return s
}

func TestRunCalculations(t *testing.T) {
	r, out := newTestREPL(t, Config{})
	got := transcript(t, r, out,
		"sqrt(16)",
		"",
		"   ",
		"9//2",
		"1/3",
		"foo",
		"sqrt(-1)",
		"open('x')",
		"2 +",
		"2**3**2",
	)
	want := strings.Join([]string{
		"4",
		"4",
		"0.3333333333",
		`Error: undefined variable: "foo"`,
		"Error: error calling sqrt: math domain error",
		`Error: function "open" is not allowed; allowed functions: ` + strings.Join(safecalc.FuncNames(), ", "),
		"Error: 4: no expression at end",
		"512",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	// Only successes go into the history.
	assert.Equal(t, 4, r.History().Len())
}

func TestRunQuit(t *testing.T) {
	for _, cmd := range []string{"quit", "exit", "QUIT", " Exit "} {
		t.Run(cmd, func(t *testing.T) {
			r, out := newTestREPL(t, Config{})
			got := transcript(t, r, out, "1+1", cmd, "2+2")
			assert.Equal(t, "2\n", got)
		})
	}
}

func TestRunEOF(t *testing.T) {
	r, out := newTestREPL(t, Config{})
	got := transcript(t, r, out, "1+1")
	// A newline follows the last prompt at the end of input.
	assert.Equal(t, "2\n\n", got)
}

type failReader struct{}

func (failReader) ReadLine() (string, error) {
	return "", errors.New("broken pipe")
}

func TestRunReadError(t *testing.T) {
	r, _ := newTestREPL(t, Config{})
	err := r.Run(failReader{})
	assert.EqualError(t, err, "reading input: broken pipe")
}

func TestHistory(t *testing.T) {
	r, out := newTestREPL(t, Config{})
	assert.False(t, r.Exec("history"))
	assert.Equal(t, "No calculation history yet.\n", out.String())

	out.Reset()
	for i := 1; i <= 12; i++ {
		r.Exec(strings.Repeat("1+", i) + "0")
	}
	out.Reset()
	r.Exec("HISTORY")
	s := out.String()
	// Only the last ten are shown, numbered from 1.
	assert.NotRegexp(t, `\|\s*(1\+){2}0\s*\|`, s)
	assert.Contains(t, s, strings.Repeat("1+", 3)+"0")
	assert.Contains(t, s, strings.Repeat("1+", 12)+"0")
	assert.Contains(t, s, "Expression")
	assert.Regexp(t, `(?m)^\|\s*10\s*\|\s*(1\+){12}0\s*\|\s*12\s*\|$`, s)
	assert.Regexp(t, `(?m)^\|\s*1\s*\|\s*(1\+){3}0\s*\|\s*3\s*\|$`, s)

	out.Reset()
	r.Exec("clear")
	assert.Equal(t, "History cleared.\n", out.String())
	out.Reset()
	r.Exec("history")
	assert.Equal(t, "No calculation history yet.\n", out.String())
}

func TestHistorySize(t *testing.T) {
	r, _ := newTestREPL(t, Config{HistorySize: 2})
	r.Exec("1")
	r.Exec("2")
	r.Exec("3")
	assert.Equal(t, 2, r.History().Len())
	assert.Equal(t, "2", r.History().Entries()[0].Input)
}

func TestHelp(t *testing.T) {
	for _, cmd := range []string{"help", "h", "Help"} {
		t.Run(cmd, func(t *testing.T) {
			r, out := newTestREPL(t, Config{})
			assert.False(t, r.Exec(cmd))
			s := out.String()
			for _, name := range safecalc.FuncNames() {
				assert.Contains(t, s, name)
			}
			for _, name := range safecalc.ConstNames() {
				assert.Contains(t, s, name)
			}
			assert.Contains(t, s, "// (floor division)")
			assert.Contains(t, s, "history")
			assert.Equal(t, 0, r.History().Len())
		})
	}
}

func TestMaxDepth(t *testing.T) {
	r, out := newTestREPL(t, Config{MaxDepth: 3})
	r.Exec("((1))")
	r.Exec("(((1)))")
	assert.Equal(t, "1\nError: 3: expression nested more than 3 deep\n", out.String())

	_, err := New(Config{MaxDepth: -1}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestEvalCache(t *testing.T) {
	r, _ := newTestREPL(t, Config{CacheSize: 2})
	v, err := r.Eval("2*pi")
	require.NoError(t, err)
	assert.Equal(t, 1, r.cache.Len())
	w, err := r.Eval("2*pi")
	require.NoError(t, err)
	assert.Equal(t, v, w)
	assert.Equal(t, 1, r.cache.Len())

	// Failed parses are not cached, but evaluation failures are.
	_, err = r.Eval("2*")
	assert.Error(t, err)
	assert.Equal(t, 1, r.cache.Len())
	_, err = r.Eval("foo")
	assert.Error(t, err)
	_, err = r.Eval("foo")
	assert.Error(t, err)
	assert.Equal(t, 2, r.cache.Len())
	r.Eval("1")
	assert.Equal(t, 2, r.cache.Len())
	assert.False(t, r.cache.Contains("2*pi"))
}

func TestColor(t *testing.T) {
	var out bytes.Buffer
	r, err := New(Config{}, &out)
	require.NoError(t, err)
	r.errc.EnableColor()
	r.Exec("foo")
	assert.Contains(t, out.String(), "\x1b[31m")
	assert.Contains(t, out.String(), `undefined variable: "foo"`)
}
