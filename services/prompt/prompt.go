// Package prompt asks the user yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Confirmer asks a question on out and reads the answer from in.
// Answers are read by one goroutine that lives as long as in stays open (for stdin, the process):
// a canceled prompt leaves it waiting for the next line, which then answers the next prompt.
type Confirmer struct {
	in          io.Reader
	out         io.Writer
	interactive func() bool

	once  sync.Once
	lines chan string
}

// NewTerminalConfirmer reads answers from stdin; it declines when stdin is not a terminal.
func NewTerminalConfirmer() *Confirmer {
	return &Confirmer{
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		lines:       make(chan string),
	}
}

// NewConfirmer reads answers from in.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out, interactive: func() bool { return true }, lines: make(chan string)}
}

// readLines sends every line of in, then closes lines.
func (c *Confirmer) readLines() {
	defer close(c.lines)
	r := bufio.NewReader(c.in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			c.lines <- line
		}
		if err != nil {
			return
		}
	}
}

// Confirm is only affirmative for a "y" or "yes" answer; anything else, or no answer, declines.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if !c.interactive() {
		return false, nil
	}
	if _, err := fmt.Fprintf(c.out, "%s [y/N] ", question); err != nil {
		return false, errors.Wrap(err, "writing prompt")
	}
	c.once.Do(func() { go c.readLines() })

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// ReadPassword reads a password from the terminal without echoing it.
func ReadPassword(out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)
	pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}
