package notify

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestTerminalWritesPrefixedNotices(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	n := NewTerminal(&buf)
	n.Error("Session expired, please login again")
	n.Success("Logged in as alice")

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "Session expired, please login again")
	assert.Contains(t, out, "SUCCESS")
	assert.Contains(t, out, "Logged in as alice")
}

var _ Notifier = Discard{}
