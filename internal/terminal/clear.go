// Package terminal provides small terminal helpers: clearing echoed input,
// reading passwords without echo, and an inline spinner.
package terminal

import (
	"math"
	"os"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

// Width returns the width of stdout, 80 when it is not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// linesFor returns how many terminal lines textLength characters occupy,
// plus the empty line left behind by Enter.
func linesFor(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	n := int(math.Ceil(float64(textLength) / float64(width)))
	if n < 1 {
		n = 1
	}
	return n + 1
}

// ClearPreviousLines removes a prompt and the answer typed after it.
// textLength is the number of characters of prompt plus input.
func ClearPreviousLines(textLength int) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	cursor.ClearLinesUp(linesFor(textLength, Width()))
}
