package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"docspell/internal/dump"
	"docspell/internal/model"
	"docspell/internal/spell"
)

// DumpSource produces the syntax-tree dump of a source file. Closing the
// stream releases whatever produced it.
type DumpSource interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// WordChecker judges single words. spell.Session implements it.
type WordChecker interface {
	IsAccepted(word string) (bool, error)
}

// Checker runs extraction, tokenizing and spell checking over input files.
type Checker struct {
	dumps     DumpSource
	words     WordChecker
	extractor *dump.Extractor
	tokenizer spell.Tokenizer
	logger    *slog.Logger
}

// NewChecker wires a Checker. words is used exclusively by the Checker for
// the duration of its runs.
func NewChecker(dumps DumpSource, words WordChecker, extractor *dump.Extractor, tokenizer spell.Tokenizer, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		dumps:     dumps,
		words:     words,
		extractor: extractor,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// CheckFile checks the documentation comments of one file.
func (c *Checker) CheckFile(ctx context.Context, path string) (model.FileReport, error) {
	fr := model.FileReport{Path: path}

	stream, err := c.dumps.Open(ctx, path)
	if err != nil {
		return fr, fmt.Errorf("dump %s: %w", path, err)
	}

	if err := c.checkStream(stream, &fr); err != nil {
		stream.Close()
		return fr, err
	}

	if err := stream.Close(); err != nil {
		if ctx.Err() != nil {
			return fr, ctx.Err()
		}
		// clang still dumps what it parsed when the file has errors.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fr, fmt.Errorf("dump %s: %w", path, err)
		}
		c.logger.Warn("AST generator reported errors", "file", path, "error", err)
	}
	if ctx.Err() != nil {
		return fr, ctx.Err()
	}
	return fr, nil
}

func (c *Checker) checkStream(stream io.Reader, fr *model.FileReport) error {
	for text, err := range c.extractor.Comments(stream, fr.Path) {
		if err != nil {
			return fmt.Errorf("read dump of %s: %w", fr.Path, err)
		}
		words := c.tokenizer.Words(text)
		c.logger.Debug("comment text", "file", fr.Path, "line", text.SourceLine, "words", words)

		for _, w := range words {
			ok, err := c.words.IsAccepted(string(w))
			if err != nil {
				return fmt.Errorf("check %q in %s: %w", w, fr.Path, err)
			}
			if !ok {
				fr.Reject(text.SourceLine, w)
			}
		}
	}
	return nil
}

// Run checks paths in order. emit, when non-nil, receives each file report
// as soon as the file is done; an emit error stops the run.
func (c *Checker) Run(ctx context.Context, paths []string, emit func(model.FileReport) error) (model.RunResult, error) {
	var result model.RunResult
	for _, path := range paths {
		fr, err := c.CheckFile(ctx, path)
		if err != nil {
			return result, err
		}
		result.Add(fr)
		c.logger.Info("checked file", "file", path, "rejections", fr.Rejections)

		if emit != nil {
			if err := emit(fr); err != nil {
				return result, fmt.Errorf("emit report for %s: %w", path, err)
			}
		}
	}
	return result, nil
}
