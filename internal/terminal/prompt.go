package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for input. Input that is not a terminal (a pipe, a
// test buffer) is read line by line, passwords included.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	r *bufio.Reader
}

// NewPrompter returns a Prompter on stdin and stderr.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

func (p *Prompter) reader() *bufio.Reader {
	if p.r == nil {
		p.r = bufio.NewReader(p.In)
	}
	return p.r
}

// Ask prints label and reads one line.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	line, err := p.reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password prints label and reads a secret without echo when In is a terminal.
func (p *Prompter) Password(label string) (string, error) {
	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.Out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return p.Ask(label)
}
