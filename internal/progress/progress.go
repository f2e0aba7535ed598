package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Spinner renders an indeterminate progress indicator on the terminal while
// an operation runs. It is only used by the CLI; server transports stay quiet.
type Spinner struct {
	message   string
	out       io.Writer
	mu        sync.Mutex
	startTime time.Time
	done      chan struct{}
	once      sync.Once
}

func NewSpinner(message string) *Spinner {
	s := &Spinner{
		message:   message,
		out:       os.Stdout,
		startTime: time.Now(),
		done:      make(chan struct{}),
	}
	go s.render()
	return s
}

func (s *Spinner) render() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := 0

	for {
		select {
		case <-s.done:
			s.mu.Lock()
			elapsed := time.Since(s.startTime)
			fmt.Fprintf(s.out, "\r✓ %s (%s)          \n", s.message, elapsed.Round(time.Millisecond))
			s.mu.Unlock()
			return

		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s  ", frames[frame%len(frames)], s.message)
			s.mu.Unlock()
			frame++
		}
	}
}

// Finish stops the spinner and prints the elapsed time. Safe to call more
// than once.
func (s *Spinner) Finish() {
	s.once.Do(func() {
		close(s.done)
		time.Sleep(time.Millisecond)
	})
}
