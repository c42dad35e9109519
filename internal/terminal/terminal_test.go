package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesFor(t *testing.T) {
	tests := []struct {
		length, width, want int
	}{
		{0, 80, 2},
		{10, 80, 2},
		{80, 80, 2},
		{81, 80, 3},
		{200, 0, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, linesFor(tt.length, tt.width), "length=%d width=%d", tt.length, tt.width)
	}
}

func TestPrompterReadsLines(t *testing.T) {
	var out bytes.Buffer
	p := &Prompter{In: strings.NewReader("alice\r\nsecret"), Out: &out}

	user, err := p.Ask("Username: ")
	require.NoError(t, err)
	pass, err := p.Password("Password: ")
	require.NoError(t, err)

	assert.Equal(t, "alice", user)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, "Username: Password: ", out.String())

	_, err = p.Ask("More: ")
	assert.Error(t, err)
}

func TestSpinnerClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Loading", time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	stop()
	stop()
	out := buf.String()
	assert.Contains(t, out, "Loading")
	assert.True(t, strings.HasSuffix(out, "\r"))
}
