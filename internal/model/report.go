package model

// Word is a normalized token taken from a comment fragment.
type Word string

// CommentText is one documentation fragment recovered from a dump stream.
type CommentText struct {
	SourceLine int    // Source line the fragment was attributed to
	Text       string // Prose with surrounding whitespace removed
	// SkipFirstWord is set when the fragment follows a throws-style command:
	// its first token names an exception type and is not checked.
	SkipFirstWord bool
}

// LineReport lists the rejected words of one source line in order of appearance.
type LineReport struct {
	SourceLine int    `json:"line"`
	Words      []Word `json:"words"`
}

// FileReport is the result of checking one input file.
type FileReport struct {
	Path       string       `json:"path"`
	Lines      []LineReport `json:"lines"`
	Rejections int          `json:"rejections"`
}

// Clean reports whether the file had no unrecognized words.
func (f FileReport) Clean() bool {
	return f.Rejections == 0
}

// Reject records word as unrecognized on sourceLine. A line keeps the
// position at which it was first reported.
func (f *FileReport) Reject(sourceLine int, word Word) {
	f.Rejections++
	for i := range f.Lines {
		if f.Lines[i].SourceLine == sourceLine {
			f.Lines[i].Words = append(f.Lines[i].Words, word)
			return
		}
	}
	f.Lines = append(f.Lines, LineReport{SourceLine: sourceLine, Words: []Word{word}})
}

// RunResult aggregates every file checked during one run.
type RunResult struct {
	Files      []FileReport `json:"files"`
	Rejections int          `json:"rejections"`
}

// Add appends a finished file report and accumulates its rejections.
func (r *RunResult) Add(f FileReport) {
	r.Files = append(r.Files, f)
	r.Rejections += f.Rejections
}

// ExitCode returns the process status for the run. Rejections only fail
// the run when errorExit is set.
func (r RunResult) ExitCode(errorExit bool) int {
	if errorExit && r.Rejections > 0 {
		return 1
	}
	return 0
}
