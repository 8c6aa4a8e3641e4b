package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Terminal is a line editor over a terminal in raw mode.
type Terminal struct {
	*term.Terminal
	fd    int
	state *term.State
}

// OpenTerminal puts the terminal f into raw mode and returns a line editor
// on it. Output must go through the returned Terminal while it is open. Close
// restores the terminal.
func OpenTerminal(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "setting terminal to raw mode")
	}
	t := Terminal{
		Terminal: term.NewTerminal(f, Prompt),
		fd:       fd,
		state:    state,
	}
	return &t, nil
}

// Close restores the terminal to its state before OpenTerminal.
func (t *Terminal) Close() error {
	return errors.Wrap(term.Restore(t.fd, t.state), "restoring terminal")
}

// IsTerminal returns whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Lines reads lines from a plain input, printing the prompt to out before
// each one.
type Lines struct {
	s   *bufio.Scanner
	out io.Writer
}

// NewLines creates a LineReader on in that prompts on out.
func NewLines(in io.Reader, out io.Writer) *Lines {
	return &Lines{s: bufio.NewScanner(in), out: out}
}

// ReadLine prints the prompt and reads one line.
func (l *Lines) ReadLine() (string, error) {
	fmt.Fprint(l.out, Prompt)
	if !l.s.Scan() {
		if err := l.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.s.Text(), nil
}

var (
	_ LineReader = (*Terminal)(nil)
	_ LineReader = (*Lines)(nil)
)
