package dump

import (
	"bufio"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"docspell/internal/model"
)

// punctuation is the ASCII punctuation set. A fragment made only of these
// characters and whitespace carries no prose.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Rules lists the comment commands that change what gets checked.
type Rules struct {
	CrossReference []string // Block commands whose subtree is a symbol reference
	Throws         []string // Block commands whose text starts with an exception type
	Image          []string // Inline commands followed by a caption reference
	// SkipBacktracked drops text nodes whose explicit location returns to a
	// line fragments were already taken from, until the next explicit line.
	// clang re-emits a comment this way for some redeclarations.
	SkipBacktracked bool
}

// DefaultRules returns the command tables for Doxygen-style comments.
func DefaultRules() Rules {
	return Rules{
		CrossReference:  []string{"sa", "see"},
		Throws:          []string{"throws"},
		Image:           []string{"image"},
		SkipBacktracked: true,
	}
}

// State is the extractor's per-file parse state. Step returns an updated
// copy, so a file's pass is a fold of Step over its lines.
type State struct {
	Target     string // Path whose first mention ends the preamble
	Reached    bool   // Target has been seen
	SourceLine int    // Current source line, inherited by column-only nodes

	Yielded     []int // Source lines fragments were taken from, in order
	InOtherFile bool  // Positions currently belong to an included file

	InHTMLTag           bool
	SkipUntilLineChange bool
	SkipNextText        bool
	SkipFirstWord       bool
	SkipUntilDepthBelow int // 0 when inactive
}

// NewState returns the initial state for a pass over target's dump.
func NewState(target string) State {
	return State{Target: target}
}

// Step consumes one raw dump line. It returns the next state and, when the
// line is a documentation text node, the fragment it carries.
func (s State) Step(raw string, rules Rules) (State, model.CommentText, bool) {
	var none model.CommentText

	if !s.Reached {
		if !strings.Contains(raw, s.Target) {
			return s, none, false
		}
		s.Reached = true
	}

	line, ok := Classify(raw)
	if !ok {
		return s, none, false
	}

	if s.SkipUntilDepthBelow > 0 {
		if line.Depth >= s.SkipUntilDepthBelow {
			return s, none, false
		}
		s.SkipUntilDepthBelow = 0
	}

	bracket, data, ok := line.Split()
	if !ok {
		return s, none, false
	}
	s = s.locate(ParseLocation(bracket), rules)
	if s.InOtherFile {
		return s, none, false
	}

	switch {
	case line.Kind == KindHTMLEndTag:
		s.InHTMLTag = false
		return s, none, false
	case s.InHTMLTag:
		return s, none, false
	case line.Kind == KindHTMLStartTag:
		s.InHTMLTag = true
		return s, none, false
	case line.Kind == KindBlockCommand:
		name, _ := CommandName(data)
		switch {
		case slices.Contains(rules.CrossReference, name):
			s.SkipUntilDepthBelow = line.Depth
		case slices.Contains(rules.Throws, name):
			s.SkipFirstWord = true
		}
		return s, none, false
	case line.Kind == KindInlineCommand:
		if name, _ := CommandName(data); slices.Contains(rules.Image, name) {
			s.SkipNextText = true
		}
		return s, none, false
	case line.Kind != KindText:
		return s, none, false
	}

	if s.SkipUntilLineChange {
		return s, none, false
	}
	if s.SkipNextText {
		s.SkipNextText = false
		return s, none, false
	}

	text, ok := TextPayload(data)
	if !ok {
		return s, none, false
	}
	text = strings.TrimSpace(text)
	if strings.Trim(text, punctuation+" \t") == "" {
		return s, none, false
	}

	out := model.CommentText{
		SourceLine:    s.SourceLine,
		Text:          text,
		SkipFirstWord: s.SkipFirstWord,
	}
	s.SkipFirstWord = false
	if !slices.Contains(s.Yielded, s.SourceLine) {
		// Clip so the append never writes into a slice shared with the
		// state this one was copied from.
		s.Yielded = append(slices.Clip(s.Yielded), s.SourceLine)
	}
	return s, out, true
}

func (s State) locate(loc Location, rules Rules) State {
	if !loc.Explicit {
		return s
	}
	if loc.File != "" {
		s.InOtherFile = !sameFile(loc.File, s.Target)
	}
	if s.InOtherFile {
		return s
	}
	s.SourceLine = loc.Line
	s.SkipUntilLineChange = rules.SkipBacktracked && slices.Contains(s.Yielded, loc.Line)
	return s
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// Extractor pulls documentation fragments out of a dump stream.
type Extractor struct {
	rules  Rules
	logger *slog.Logger
}

// NewExtractor creates an Extractor applying rules.
func NewExtractor(rules Rules, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{rules: rules, logger: logger}
}

// Comments yields the fragments of target's dump read from r, in stream
// order. A read failure is yielded once as the final element.
func (x *Extractor) Comments(r io.Reader, target string) iter.Seq2[model.CommentText, error] {
	return func(yield func(model.CommentText, error) bool) {
		scanner := bufio.NewScanner(r)
		// Declarations with long initializers produce very long lines
		scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

		state := NewState(target)
		for scanner.Scan() {
			raw := strings.TrimRight(scanner.Text(), " \t\r")
			x.logger.Debug("checking", "line", raw)

			var (
				text model.CommentText
				ok   bool
			)
			state, text, ok = state.Step(raw, x.rules)
			if !ok {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(model.CommentText{}, err)
		}
	}
}
