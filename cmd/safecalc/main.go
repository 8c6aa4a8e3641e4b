// Command safecalc evaluates arithmetic expressions, either given on the
// command line or interactively.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/zephyrtronium/safecalc"
	"github.com/zephyrtronium/safecalc/internal/repl"
	"github.com/zephyrtronium/safecalc/internal/selftest"
)

const (
	exprFlag        = "expr"
	testFlag        = "test"
	verboseFlag     = "verbose"
	maxDepthFlag    = "max-depth"
	historySizeFlag = "history-size"
	noColorFlag     = "no-color"
)

// Exit codes.
const (
	exitOK       = 0
	exitEvalFail = 1
	exitTestFail = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run runs the command with the given arguments and streams and returns the
// exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := &cli.App{
		Name:      "safecalc",
		Usage:     "Evaluate arithmetic expressions safely.",
		ArgsUsage: "[expression ...]",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    exprFlag,
				Aliases: []string{"e"},
				Usage:   "Evaluate a single expression and exit.",
			},
			&cli.BoolFlag{
				Name:  testFlag,
				Usage: "Run the built-in self-test and exit.",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Log diagnostics to stderr.",
			},
			&cli.IntFlag{
				Name:  maxDepthFlag,
				Value: safecalc.DefaultMaxDepth,
				Usage: "Maximum nesting depth of expressions.",
			},
			&cli.IntFlag{
				Name:  historySizeFlag,
				Usage: "Number of calculations to remember in interactive mode. Zero means no limit.",
			},
			&cli.BoolFlag{
				Name:  noColorFlag,
				Usage: "Disable colored error messages.",
			},
		},
		Action: func(c *cli.Context) error {
			return action(c, stdin, stdout, stderr)
		},
		// Exit codes are returned from run rather than handled by the app.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	err := app.Run(args)
	if err == nil {
		return exitOK
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitTestFail
}

func action(c *cli.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	log := newLogger(c.Bool(verboseFlag), stderr)
	depth := c.Int(maxDepthFlag)
	if depth <= 0 {
		return errors.Errorf("--%s must be positive, not %d", maxDepthFlag, depth)
	}
	switch {
	case c.Bool(testFlag):
		return selfTest(c.Context, stdout, log)
	case c.IsSet(exprFlag) || c.NArg() > 0:
		var exprs []string
		if c.IsSet(exprFlag) {
			exprs = append(exprs, c.String(exprFlag))
		}
		exprs = append(exprs, c.Args().Slice()...)
		return evalAll(exprs, depth, stdout, log)
	}
	cfg := repl.Config{
		MaxDepth:    depth,
		HistorySize: c.Int(historySizeFlag),
		NoColor:     c.Bool(noColorFlag),
		Logger:      log,
	}
	return interact(cfg, stdin, stdout)
}

func selfTest(ctx context.Context, stdout io.Writer, log slog.Logger) error {
	err := selftest.Run(ctx, selftest.Cases, stdout)
	if err != nil {
		log.Warning(err)
		fmt.Fprintln(stdout, "Some tests failed.")
		return cli.Exit("", exitTestFail)
	}
	fmt.Fprintln(stdout, "All tests passed.")
	return nil
}

// evalAll prints the value of each expression in order. Every expression is
// evaluated even if an earlier one fails.
func evalAll(exprs []string, depth int, stdout io.Writer, log slog.Logger) error {
	failed := false
	for _, s := range exprs {
		v, err := safecalc.EvalString(s, safecalc.MaxDepth(depth))
		if err != nil {
			log.Debug("evaluating ", s, ": ", err)
			fmt.Fprintln(stdout, "Error:", err)
			failed = true
			continue
		}
		fmt.Fprintln(stdout, safecalc.Format(v))
	}
	if failed {
		return cli.Exit("", exitEvalFail)
	}
	return nil
}

// interact runs the REPL, using line editing if stdin is a terminal.
func interact(cfg repl.Config, stdin io.Reader, stdout io.Writer) error {
	if f, ok := stdin.(*os.File); ok && repl.IsTerminal(f) {
		t, err := repl.OpenTerminal(f)
		if err != nil {
			return err
		}
		defer t.Close()
		r, err := repl.New(cfg, t)
		if err != nil {
			return err
		}
		return r.Run(t)
	}
	r, err := repl.New(cfg, stdout)
	if err != nil {
		return err
	}
	return r.Run(repl.NewLines(stdin, stdout))
}

// nopSync adds a no-op Sync to a writer that has none.
type nopSync struct {
	io.Writer
}

func (nopSync) Sync() error { return nil }

func newLogger(verbose bool, stderr io.Writer) slog.Logger {
	if !verbose {
		return logger.NewNopLogger()
	}
	w, ok := stderr.(logger.SyncWriter)
	if !ok {
		w = nopSync{stderr}
	}
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   w,
		DepthDelta:   2,
		IncludeDebug: true,
	})
}
