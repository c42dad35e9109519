package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing masked text lines to w.
// Unknown levels fall back to warn.
func New(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.WarnLevel
	}
	l.SetLevel(lvl)
	l.AddHook(MaskHook{})
	return l
}

// MaskHook masks the message and string fields of every entry before it is formatted.
type MaskHook struct{}

func (MaskHook) Levels() []logrus.Level { return logrus.AllLevels }

func (MaskHook) Fire(e *logrus.Entry) error {
	e.Message = Mask(e.Message)
	for k, v := range e.Data {
		switch val := v.(type) {
		case string:
			e.Data[k] = Mask(val)
		case error:
			e.Data[k] = Mask(val.Error())
		}
	}
	return nil
}
