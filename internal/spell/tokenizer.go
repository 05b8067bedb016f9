package spell

import (
	"fmt"
	"strings"

	"docspell/internal/model"
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ApostrophePolicy selects how words with apostrophes reach the engine.
type ApostrophePolicy string

const (
	ApostropheKeep       ApostrophePolicy = "keep"       // Send as written
	ApostrophePossessive ApostrophePolicy = "possessive" // Drop a trailing 's
	ApostropheSkip       ApostrophePolicy = "skip"       // Do not check such words
)

// ParseApostrophePolicy validates a configured policy name. The empty string
// selects ApostropheKeep.
func ParseApostrophePolicy(s string) (ApostrophePolicy, error) {
	switch p := ApostrophePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ApostropheKeep, nil
	case ApostropheKeep, ApostrophePossessive, ApostropheSkip:
		return p, nil
	default:
		return "", fmt.Errorf("unknown apostrophe policy %q", s)
	}
}

// Tokenizer splits comment fragments into candidate words.
type Tokenizer struct {
	Apostrophes ApostrophePolicy
}

// Words returns the fragment's words in order. When the fragment follows a
// throws-style command its first token is dropped whatever it contains.
func (t Tokenizer) Words(c model.CommentText) []model.Word {
	tokens := strings.Fields(c.Text)
	if c.SkipFirstWord && len(tokens) > 0 {
		tokens = tokens[1:]
	}

	words := make([]model.Word, 0, len(tokens))
	for _, tok := range tokens {
		w, ok := t.normalize(tok)
		if !ok {
			continue
		}
		words = append(words, model.Word(w))
	}
	return words
}

func (t Tokenizer) normalize(tok string) (string, bool) {
	tok = trimQuote(tok)
	tok = trimPair(tok, '(', ')')
	tok = strings.Trim(tok, punctuation)

	if hasApostrophe(tok) {
		switch t.Apostrophes {
		case ApostropheSkip:
			return "", false
		case ApostrophePossessive:
			for _, suffix := range []string{"'s", "’s"} {
				tok = strings.TrimSuffix(tok, suffix)
			}
		}
	}
	return tok, tok != ""
}

// trimQuote removes one layer of quoting, using whichever quote character
// opens the token, or closes it when it does not open with one.
func trimQuote(s string) string {
	if s == "" {
		return s
	}
	q := s[0]
	if q != '"' && q != '\'' {
		q = s[len(s)-1]
	}
	if q != '"' && q != '\'' {
		return s
	}
	return trimPair(s, q, q)
}

// trimPair removes one leading open and one trailing closing character.
func trimPair(s string, open, closing byte) string {
	if len(s) > 0 && s[0] == open {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == closing {
		s = s[:len(s)-1]
	}
	return s
}

func hasApostrophe(s string) bool {
	return strings.ContainsAny(s, "'’")
}
