package spell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
)

// ErrSessionClosed is returned once the engine's pipe is gone. The session
// cannot be resynchronized and the run must stop.
var ErrSessionClosed = errors.New("spelling session closed")

// DefaultAcceptMarkers holds the reply prefix meaning "word is correct".
const DefaultAcceptMarkers = "*"

var (
	allNonWord     = regexp.MustCompile(`^[^\p{L}\p{N}_]+$`)
	leadingNonWord = regexp.MustCompile(`^[^\p{L}\p{N}_]`)
)

// Session is a persistent pipe-mode connection to a spelling engine. It is
// not safe for concurrent use; queries are strictly request then reply.
type Session struct {
	cmd    *exec.Cmd // nil when the session runs over caller-provided streams
	stderr *bytes.Buffer
	stdin  io.WriteCloser
	w      *bufio.Writer
	r      *bufio.Reader

	markers string
	logger  *slog.Logger
	queries int
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithAcceptMarkers sets the reply prefixes that accept a word.
func WithAcceptMarkers(markers string) Option {
	return func(s *Session) {
		if markers != "" {
			s.markers = markers
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Start launches engine and waits for its banner. Cancelling ctx kills the
// engine, which fails any pending query.
func Start(ctx context.Context, engine Engine, opts ...Option) (*Session, error) {
	name, args := engine.Command()
	cmd := exec.CommandContext(ctx, name, args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", engine.Name(), err)
	}

	s, err := NewSession(stdin, stdout, opts...)
	if err != nil {
		stdin.Close()
		_ = cmd.Wait()
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", engine.Name(), err, msg)
		}
		return nil, fmt.Errorf("%s: %w", engine.Name(), err)
	}
	s.cmd = cmd
	s.stderr = stderr
	s.logger.Debug("argv for spelling tool", "engine", engine.Name(), "argv", append([]string{name}, args...))
	return s, nil
}

// NewSession runs the protocol over an already connected engine. It reads
// and discards the banner line before returning.
func NewSession(stdin io.WriteCloser, stdout io.Reader, opts ...Option) (*Session, error) {
	s := &Session{
		stdin:   stdin,
		w:       bufio.NewWriter(stdin),
		r:       bufio.NewReader(stdout),
		markers: DefaultAcceptMarkers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	banner, err := s.r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read banner: %w: %w", ErrSessionClosed, err)
	}
	s.logger.Debug("spelling engine ready", "banner", strings.TrimRight(banner, "\r\n"))
	return s, nil
}

// IsAccepted asks the engine whether word is correctly spelled. Empty and
// all-symbol words are accepted and words starting with a symbol are
// rejected, both without a query: a leading symbol would be read by the
// engine as a pipe-mode command.
func (s *Session) IsAccepted(word string) (bool, error) {
	switch {
	case word == "":
		return true, nil
	case allNonWord.MatchString(word):
		return true, nil
	case leadingNonWord.MatchString(word):
		return false, nil
	}
	if s.closed {
		return false, ErrSessionClosed
	}

	if _, err := s.w.WriteString(word + "\n"); err != nil {
		return false, fmt.Errorf("send %q: %w: %w", word, ErrSessionClosed, err)
	}
	if err := s.w.Flush(); err != nil {
		return false, fmt.Errorf("send %q: %w: %w", word, ErrSessionClosed, err)
	}
	s.queries++

	// Read the whole reply batch even once rejected, or the next query
	// would read this one's leftovers.
	accepted := true
	for {
		line, err := s.r.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("read reply for %q: %w: %w", word, ErrSessionClosed, err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if !strings.ContainsRune(s.markers, rune(line[0])) {
			accepted = false
		}
	}
	s.logger.Debug("checked word", "word", word, "accepted", accepted)
	return accepted, nil
}

// Queries returns the number of words sent to the engine so far.
func (s *Session) Queries() int {
	return s.queries
}

// Close ends the session and waits for the engine to exit. It is safe to
// call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.stdin.Close()
	if s.cmd == nil {
		return err
	}
	if werr := s.cmd.Wait(); werr != nil {
		if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
			return fmt.Errorf("spelling engine exited: %w: %s", werr, msg)
		}
		return fmt.Errorf("spelling engine exited: %w", werr)
	}
	return nil
}
