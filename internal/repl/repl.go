// Package repl implements the interactive calculator loop.
package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	lru "github.com/hashicorp/golang-lru"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/safecalc"
	"github.com/zephyrtronium/safecalc/internal/history"
)

// Prompt is printed before each line of input.
const Prompt = "calc> "

// historyShown is the number of entries the history command prints.
const historyShown = 10

// DefaultCacheSize is the number of parsed expressions kept when the config
// does not say otherwise.
const DefaultCacheSize = 128

// Config configures a REPL.
type Config struct {
	// MaxDepth limits expression nesting. Zero means safecalc.DefaultMaxDepth.
	MaxDepth int
	// HistorySize limits the number of remembered calculations. Zero means
	// no limit.
	HistorySize int
	// CacheSize is the number of parsed expressions to keep for reuse. Zero
	// means DefaultCacheSize.
	CacheSize int
	// NoColor disables colored error messages.
	NoColor bool
	// Logger receives diagnostics. Nil means no logging.
	Logger slog.Logger
}

// LineReader reads one line of input at a time. ReadLine returns io.EOF when
// there is no more input.
type LineReader interface {
	ReadLine() (string, error)
}

// REPL evaluates lines of input and prints the results.
type REPL struct {
	out   io.Writer
	hist  *history.History
	cache *lru.Cache
	opt   safecalc.ParseOption
	errc  *color.Color
	log   slog.Logger
}

// New creates a REPL that writes to out.
func New(cfg Config, out io.Writer) (*REPL, error) {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = safecalc.DefaultMaxDepth
	}
	if cfg.MaxDepth < 0 {
		return nil, errors.Errorf("max depth must be positive, not %d", cfg.MaxDepth)
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating expression cache")
	}
	errc := color.New(color.FgRed)
	if cfg.NoColor {
		errc.DisableColor()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNopLogger()
	}
	r := REPL{
		out:   out,
		hist:  history.New(cfg.HistorySize),
		cache: cache,
		opt:   safecalc.ParsingPreset(safecalc.MaxDepth(cfg.MaxDepth)),
		errc:  errc,
		log:   cfg.Logger,
	}
	return &r, nil
}

// History returns the REPL's calculation history.
func (r *REPL) History() *history.History {
	return r.hist
}

// Run prints a banner, then reads and executes lines until quit or the end
// of input. Errors in expressions are printed and do not stop the loop; only
// failures to read input are returned.
func (r *REPL) Run(in LineReader) error {
	fmt.Fprintln(r.out, "Safe calculator with math functions, constants, and history.")
	fmt.Fprintln(r.out, "Type 'help' for commands, 'quit' or 'exit' to leave.")
	for {
		line, err := in.ReadLine()
		if err != nil {
			fmt.Fprintln(r.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "reading input")
		}
		if r.Exec(line) {
			return nil
		}
	}
}

// Exec executes one line of input, which is either a command or an
// expression. It returns true if the line asks to quit.
func (r *REPL) Exec(line string) (quit bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	switch strings.ToLower(s) {
	case "quit", "exit":
		return true
	case "help", "h":
		r.help()
	case "history":
		r.showHistory()
	case "clear":
		r.hist.Clear()
		fmt.Fprintln(r.out, "History cleared.")
	default:
		r.calc(s)
	}
	return false
}

// Eval evaluates an expression, reusing the parse of an identical earlier
// input when there is one.
func (r *REPL) Eval(s string) (float64, error) {
	if v, ok := r.cache.Get(s); ok {
		return v.(*safecalc.Expr).Eval()
	}
	a, err := safecalc.ParseString(s, r.opt)
	if err != nil {
		return 0, err
	}
	r.cache.Add(s, a)
	return a.Eval()
}

func (r *REPL) calc(s string) {
	v, err := r.Eval(s)
	if err != nil {
		r.log.Debug("evaluating ", strconv.Quote(s), ": ", err)
		r.errc.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	f := safecalc.Format(v)
	fmt.Fprintln(r.out, f)
	r.hist.Add(s, f)
}

func (r *REPL) help() {
	t := tablewriter.NewWriter(r.out)
	t.SetHeader([]string{"Topic", "Details"})
	t.SetAutoWrapText(false)
	t.AppendBulk([][]string{
		{"Operators", "+ - * / % ** // (floor division)"},
		{"Functions", strings.Join(safecalc.FuncNames(), ", ")},
		{"Constants", strings.Join(safecalc.ConstNames(), ", ")},
		{"Commands", "history (show calculations), clear (clear history), help, quit"},
		{"Examples", "pi * 2, sqrt(16), sin(pi/2), abs(-5), log(8, 2)"},
	})
	t.Render()
}

func (r *REPL) showHistory() {
	entries := r.hist.Last(historyShown)
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No calculation history yet.")
		return
	}
	t := tablewriter.NewWriter(r.out)
	t.SetHeader([]string{"#", "Expression", "Result"})
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	for i, e := range entries {
		t.Append([]string{strconv.Itoa(i + 1), e.Input, e.Result})
	}
	t.Render()
}
