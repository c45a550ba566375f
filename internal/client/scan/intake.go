package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrSessionActive is returned by Begin while another session runs.
	ErrSessionActive = errors.New("scan session already active")
	// ErrNoSession is returned by Complete when no session was started.
	ErrNoSession = errors.New("no active scan session")
	// ErrCancelled is returned by Wait when the abort channel closes first.
	ErrCancelled = errors.New("scan cancelled")
)

// Scanner is an external decoder. Start delivers decoded text through
// onDecode and per-frame failures through onError, both possibly from
// another goroutine. Stop must be safe to call on a stopped scanner.
type Scanner interface {
	Start(ctx context.Context, onDecode func(text string), onError func(err error)) error
	Stop() error
}

type session struct {
	scanner  Scanner
	stopOnce sync.Once
	stopErr  error
}

func (s *session) stop() error {
	s.stopOnce.Do(func() { s.stopErr = s.scanner.Stop() })
	return s.stopErr
}

// Intake holds the pending code of the current scan session.
type Intake struct {
	mu      sync.Mutex
	current *session
	pending string
	ready   chan struct{}
}

func NewIntake() *Intake {
	return &Intake{}
}

// Begin starts a session on s. Any code left from an earlier session is
// dropped.
func (in *Intake) Begin(ctx context.Context, s Scanner) error {
	in.mu.Lock()
	if in.current != nil {
		in.mu.Unlock()
		return ErrSessionActive
	}
	sess := &session{scanner: s}
	in.current = sess
	in.pending = ""
	in.ready = make(chan struct{})
	in.mu.Unlock()

	err := s.Start(ctx,
		func(text string) { in.deliver(sess, text) },
		func(error) {}, // a frame that fails to decode is expected noise
	)
	if err != nil {
		in.end(sess)
		return fmt.Errorf("start scanner: %w", err)
	}
	return nil
}

// deliver records the first non-empty code of sess and releases the
// scanner. Late or empty deliveries are ignored.
func (in *Intake) deliver(sess *session, text string) {
	if text == "" {
		return
	}

	in.mu.Lock()
	if in.current != sess || in.pending != "" {
		in.mu.Unlock()
		return
	}
	in.pending = text
	close(in.ready)
	in.mu.Unlock()

	_ = sess.stop()
}

// Pending returns the decoded code, if one has arrived.
func (in *Intake) Pending() (string, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.pending, in.pending != ""
}

// Active reports whether a session is running.
func (in *Intake) Active() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.current != nil
}

// Wait blocks until a code is pending, abort is closed or ctx is done.
// A nil abort channel never fires.
func (in *Intake) Wait(ctx context.Context, abort <-chan struct{}) (string, error) {
	in.mu.Lock()
	if in.current == nil {
		in.mu.Unlock()
		return "", ErrNoSession
	}
	ready := in.ready
	in.mu.Unlock()

	select {
	case <-ready:
		code, _ := in.Pending()
		return code, nil
	case <-abort:
		// A decode stops the scanner, which may close abort as well.
		if code, ok := in.Pending(); ok {
			return code, nil
		}
		return "", ErrCancelled
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Complete hands the pending code to create. When create succeeds the code
// is cleared and the session ends; when it fails the code stays pending so
// the user can correct the form and retry.
func (in *Intake) Complete(create func(code string) error) error {
	in.mu.Lock()
	sess := in.current
	code := in.pending
	in.mu.Unlock()

	if sess == nil {
		return ErrNoSession
	}

	if err := create(code); err != nil {
		return err
	}
	return in.end(sess)
}

// Cancel clears the pending code and ends the session. It is a no-op when
// nothing is active.
func (in *Intake) Cancel() error {
	in.mu.Lock()
	sess := in.current
	in.mu.Unlock()

	if sess == nil {
		return nil
	}
	return in.end(sess)
}

func (in *Intake) end(sess *session) error {
	in.mu.Lock()
	if in.current == sess {
		in.current = nil
		in.pending = ""
	}
	in.mu.Unlock()

	return sess.stop()
}
