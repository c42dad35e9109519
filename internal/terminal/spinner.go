package terminal

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
)

// Frames is the default spinner animation.
var Frames = []string{"|", "/", "-", "\\"}

// StartSpinner draws frames followed by text on one line until the returned
// stop function is called. The line is cleared on stop.
func StartSpinner(w io.Writer, text string, interval time.Duration) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	cursor.Hide()
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				line := fmt.Sprintf("%s %s", Frames[i%len(Frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", Frames[i%len(Frames)], text)
				i++
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
			cursor.Show()
		})
	}
}
