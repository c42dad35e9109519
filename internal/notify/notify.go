// Package notify shows short user-facing notices. Notices are fire-and-forget:
// callers never wait on them and cannot observe failures.
package notify

import (
	"io"

	"github.com/pterm/pterm"
)

// Notifier receives user-visible notices.
type Notifier interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// Terminal prints notices with pterm prefix printers.
type Terminal struct {
	w io.Writer
}

// NewTerminal returns a Notifier writing to w.
func NewTerminal(w io.Writer) *Terminal { return &Terminal{w: w} }

func (t *Terminal) Error(msg string)   { pterm.Error.WithWriter(t.w).Println(msg) }
func (t *Terminal) Warning(msg string) { pterm.Warning.WithWriter(t.w).Println(msg) }
func (t *Terminal) Info(msg string)    { pterm.Info.WithWriter(t.w).Println(msg) }
func (t *Terminal) Success(msg string) { pterm.Success.WithWriter(t.w).Println(msg) }

// Discard drops every notice.
type Discard struct{}

func (Discard) Error(string)   {}
func (Discard) Warning(string) {}
func (Discard) Info(string)    {}
func (Discard) Success(string) {}
