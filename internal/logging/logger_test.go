package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")

	log.WithField("header", "Bearer abc.def").
		WithError(errors.New("login failed for password=hunter2")).
		Debug("sending token=xyz")

	out := buf.String()
	assert.NotContains(t, out, "abc.def")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "xyz")
	assert.Contains(t, out, "token=***")
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "nonsense")
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
