package scan

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// LineScanner reads one decoded code per line, the way keyboard-wedge
// barcode readers type into a terminal. An empty line or end of input means
// the user gave up; Done is closed in that case and on Stop.
type LineScanner struct {
	r *bufio.Reader

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	once    sync.Once
}

func NewLineScanner(r *bufio.Reader) *LineScanner {
	return &LineScanner{r: r, done: make(chan struct{})}
}

func (s *LineScanner) Start(ctx context.Context, onDecode func(string), onError func(error)) error {
	go func() {
		line, err := s.r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			onError(err)
		}

		code := strings.TrimSpace(line)
		if code == "" || s.isStopped() || ctx.Err() != nil {
			s.finish()
			return
		}
		onDecode(code)
	}()
	return nil
}

// Stop is idempotent. It cannot interrupt a read already in progress; the
// line read afterwards is discarded.
func (s *LineScanner) Stop() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.finish()
	return nil
}

// Done is closed once the scanner can no longer produce a code.
func (s *LineScanner) Done() <-chan struct{} {
	return s.done
}

func (s *LineScanner) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *LineScanner) finish() {
	s.once.Do(func() { close(s.done) })
}
