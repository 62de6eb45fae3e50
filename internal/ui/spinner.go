package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

const interval = 80 * time.Millisecond

// Spinner displays an animated progress indicator while catalog calls run.
type Spinner struct {
	mu   sync.Mutex
	out  io.Writer
	msg  string
	done chan struct{}
	wg   sync.WaitGroup
}

// NewSpinner creates a Spinner writing to stderr (not yet running).
func NewSpinner() *Spinner {
	return NewSpinnerTo(os.Stderr)
}

func NewSpinnerTo(w io.Writer) *Spinner {
	return &Spinner{out: w}
}

// Start begins the animation with msg. Starting a running spinner only
// updates its message.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.done)
}

// Update changes the message while the spinner runs.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the spinner and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	s.wg.Wait()

	fmt.Fprint(s.out, "\r\033[K")
}

func (s *Spinner) run(done <-chan struct{}) {
	defer s.wg.Done()
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-done:
			return
		case <-tick.C:
			s.mu.Lock()
			msg := s.msg
			s.mu.Unlock()
			fmt.Fprintf(s.out, "\r\033[K%c %s", frames[i%len(frames)], msg)
		}
	}
}
