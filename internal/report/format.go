package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"docspell/internal/model"
)

// WriteText writes the human-readable report of one file.
func WriteText(w io.Writer, fr model.FileReport) error {
	_, err := io.WriteString(w, FormatFile(fr))
	return err
}

// FormatFile renders one file report:
//
//	file foo.hpp:
//	  line #12, unrecognized words: ["Teh" "quikc"]
//	  2 unrecognized words
func FormatFile(fr model.FileReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "file %s:\n", fr.Path)
	for _, line := range fr.Lines {
		fmt.Fprintf(&sb, "  line #%d, unrecognized words: %s\n", line.SourceLine, FormatWords(line.Words))
	}
	switch fr.Rejections {
	case 0:
		sb.WriteString("  no unrecognized words\n")
	case 1:
		sb.WriteString("  1 unrecognized word\n")
	default:
		fmt.Fprintf(&sb, "  %d unrecognized words\n", fr.Rejections)
	}
	return sb.String()
}

// FormatWords quotes words in order, e.g. ["Teh" "quikc"].
func FormatWords(words []model.Word) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", string(w))
	}
	return "[" + strings.Join(quoted, " ") + "]"
}

// GenerateReport renders the whole run as text.
func GenerateReport(result model.RunResult) string {
	var sb strings.Builder
	for _, fr := range result.Files {
		sb.WriteString(FormatFile(fr))
	}
	return sb.String()
}

// WriteJSON encodes the run result with two-space indentation.
func WriteJSON(w io.Writer, result model.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
