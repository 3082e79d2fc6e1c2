package reviewsense

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
		desc     string
	}{
		{"This is a great product", []string{"this", "is", "a", "great", "product"}, "Plain words"},
		{"GREAT Product!", []string{"great", "product", "!"}, "Lower-cased with punctuation"},
		{"Wow, really? (yes).", []string{"wow", ",", "really", "?", "(", "yes", ")", "."}, "Padded punctuation"},
		{"It's fine", []string{"it", "'", "s", "fine"}, "Apostrophe split"},
		{"It’s fine", []string{"it", "'", "s", "fine"}, "Typographic apostrophe"},
		{`He said "ok"`, []string{"he", "said", "ok"}, "Double quotes removed"},
		{"one;two:three<br />four", []string{"one", "two", "three", "four"}, "Separators become spaces"},
		{"ｆｕｌｌ width", []string{"full", "width"}, "NFKC folding"},
		{"  spaced \t\n out  ", []string{"spaced", "out"}, "Whitespace collapsed"},
		{"", nil, "Empty text"},
		{"   \t\n", nil, "Whitespace only"},
	}

	tokenizer := NewTokenizer()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizer.Tokenize(tt.text))
		})
	}
}

func TestTokensIsRestartable(t *testing.T) {
	seq := NewTokenizer().Tokens("Great phone. Terrible battery!")

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
}

func TestTokensStopsEarly(t *testing.T) {
	var seen []string
	for token := range NewTokenizer().Tokens("a b c d e") {
		seen = append(seen, token)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestTokenizerOptions(t *testing.T) {
	tokenizer := NewTokenizer(
		UsingRules(strings.NewReplacer("-", " ")),
		UsingNormalization(norm.NFC),
	)
	assert.Equal(t, []string{"well", "made", "and", "cheap."}, tokenizer.Tokenize("Well-made and cheap."))

	custom := NewTokenizer(UsingSanitizer(strings.NewReplacer("&amp;", "and")))
	assert.Equal(t, []string{"salt", "and", "pepper"}, custom.Tokenize("salt &amp; pepper"))
}
