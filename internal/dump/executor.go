package dump

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Stream is the standard output of a running generator. Close must be called
// once reading is done; it reaps the process.
type Stream struct {
	io.Reader
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
}

// Close releases the pipe and waits for the generator to exit. A non-zero
// exit is returned as an error wrapping *exec.ExitError, with the
// generator's diagnostics attached.
func (s *Stream) Close() error {
	// Closing our end first stops a generator blocked on a full pipe
	// when the reader gave up early.
	s.stdout.Close()
	if err := s.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", s.cmd.Path, err, lastLine(msg))
		}
		return fmt.Errorf("%s: %w", s.cmd.Path, err)
	}
	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Runner starts a Generator per file.
type Runner struct {
	gen    Generator
	logger *slog.Logger
}

// NewRunner creates a Runner for gen.
func NewRunner(gen Generator, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{gen: gen, logger: logger}
}

// Available reports an error when the generator executable cannot be found.
func (r *Runner) Available() error {
	name, _ := r.gen.Command("")
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not available: %w", r.gen.Name(), err)
	}
	return nil
}

// Open starts the generator for path and returns its output stream.
// Cancelling ctx kills the generator.
func (r *Runner) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	name, args := r.gen.Command(path)
	r.logger.Debug("argv for AST generator", "generator", r.gen.Name(), "argv", append([]string{name}, args...))

	cmd := exec.CommandContext(ctx, name, args...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", r.gen.Name(), err)
	}

	return &Stream{
		Reader: stdout,
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
	}, nil
}
