package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspell/internal/model"
)

func TestTokenizer_Words(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text model.CommentText
		want []model.Word
	}{
		{
			name: "sentence",
			text: model.CommentText{Text: "Teh quikc brown fox."},
			want: []model.Word{"Teh", "quikc", "brown", "fox"},
		},
		{
			name: "quotes and parentheses",
			text: model.CommentText{Text: `"quoted" 'single' (paren) ("both")`},
			want: []model.Word{"quoted", "single", "paren", "both"},
		},
		{
			name: "inner punctuation kept",
			text: model.CommentText{Text: "e.g. std::vector, foo-bar!"},
			want: []model.Word{"e.g", "std::vector", "foo-bar"},
		},
		{
			name: "punctuation only tokens dropped",
			text: model.CommentText{Text: "a -- b ... c"},
			want: []model.Word{"a", "b", "c"},
		},
		{
			name: "throws drops first token",
			text: model.CommentText{Text: "std::runtime_error when broken", SkipFirstWord: true},
			want: []model.Word{"when", "broken"},
		},
		{
			name: "throws drops first token even if prose",
			text: model.CommentText{Text: "Whenever", SkipFirstWord: true},
			want: []model.Word{},
		},
		{
			name: "whitespace runs",
			text: model.CommentText{Text: "  spaced \t out  "},
			want: []model.Word{"spaced", "out"},
		},
	}

	tok := Tokenizer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tok.Words(tt.text))
		})
	}
}

func TestTokenizer_Apostrophes(t *testing.T) {
	t.Parallel()

	text := model.CommentText{Text: "the widget's size isn't fixed"}

	tests := []struct {
		policy ApostrophePolicy
		want   []model.Word
	}{
		{ApostropheKeep, []model.Word{"the", "widget's", "size", "isn't", "fixed"}},
		{ApostrophePossessive, []model.Word{"the", "widget", "size", "isn't", "fixed"}},
		{ApostropheSkip, []model.Word{"the", "size", "fixed"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tokenizer{Apostrophes: tt.policy}.Words(text))
		})
	}
}

func TestTokenizer_TypographicApostrophe(t *testing.T) {
	t.Parallel()

	got := Tokenizer{Apostrophes: ApostrophePossessive}.Words(model.CommentText{Text: "the buffer’s end"})
	assert.Equal(t, []model.Word{"the", "buffer", "end"}, got)
}

func TestTrimQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`"word"`, "word"},
		{`'word'`, "word"},
		{`"'nested'"`, `'nested'`},
		{`'"nested"'`, `"nested"`},
		{`"open`, "open"},
		{`close'`, "close"},
		{`"mixed'`, "mixed'"},
		{"plain", "plain"},
		{`"`, ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, trimQuote(tt.in))
		})
	}
}

func TestParseApostrophePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseApostrophePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ApostropheKeep, p)

	p, err = ParseApostrophePolicy(" Possessive ")
	require.NoError(t, err)
	assert.Equal(t, ApostrophePossessive, p)

	_, err = ParseApostrophePolicy("strip")
	assert.Error(t, err)
}
