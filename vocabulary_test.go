package reviewsense

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyLookup(t *testing.T) {
	vocab := testVocabulary(t)

	assert.Equal(t, len(testTokens), vocab.Size())
	assert.Equal(t, 0, vocab.UnknownIndex())
	assert.Equal(t, 1, vocab.PadIndex())
	assert.Equal(t, 5, vocab.Lookup("great"))
	assert.Equal(t, vocab.UnknownIndex(), vocab.Lookup("zyzzyva"))
	assert.True(t, vocab.Contains("great"))
	assert.False(t, vocab.Contains("zyzzyva"))

	token, ok := vocab.Token(5)
	assert.True(t, ok)
	assert.Equal(t, "great", token)
	_, ok = vocab.Token(vocab.Size())
	assert.False(t, ok)
}

func TestVocabularySpecialDefaults(t *testing.T) {
	tests := []struct {
		tokens []string
		unk    int
		pad    int
		desc   string
	}{
		{[]string{"a", "b", PadToken, UnknownToken}, 3, 2, "Specials present"},
		{[]string{"a", "b", "c"}, 0, 1, "Specials absent"},
		{[]string{"a", PadToken}, 0, 1, "Only pad present"},
		{[]string{"only"}, 0, 0, "Single entry"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			vocab, err := NewVocabulary(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.unk, vocab.UnknownIndex())
			assert.Equal(t, tt.pad, vocab.PadIndex())
		})
	}
}

func TestVocabularyErrors(t *testing.T) {
	_, err := NewVocabulary(nil)
	assert.ErrorIs(t, err, ErrVocabularyEmpty)

	_, err = NewVocabulary([]string{"a", "b", "a"})
	assert.Error(t, err)

	_, err = VocabularyFromMapping(map[string]int{})
	assert.ErrorIs(t, err, ErrVocabularyEmpty)

	_, err = VocabularyFromMapping(map[string]int{"a": 0, "b": 2})
	assert.ErrorIs(t, err, ErrVocabularyIndices)

	_, err = VocabularyFromMapping(map[string]int{"a": 0, "b": 0})
	assert.ErrorIs(t, err, ErrVocabularyIndices)
}

func TestVocabularyGobRoundTrip(t *testing.T) {
	vocab := testVocabulary(t)

	var buf bytes.Buffer
	require.NoError(t, vocab.WriteGob(&buf))

	loaded, err := ReadVocabularyGob(&buf)
	require.NoError(t, err)
	assert.Equal(t, vocab.Tokens(), loaded.Tokens())
	assert.Equal(t, vocab.PadIndex(), loaded.PadIndex())
}

func TestReadVocabularyText(t *testing.T) {
	vocab, err := ReadVocabularyText(strings.NewReader("<unk>\n<pad>\ngood\nbad\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, vocab.Size())
	assert.Equal(t, 2, vocab.Lookup("good"))
	assert.Equal(t, []string{PadToken, UnknownToken}, vocab.specials())

	_, err = ReadVocabularyGob(strings.NewReader("not gob"))
	assert.Error(t, err)
}

func TestIsContentToken(t *testing.T) {
	tests := []struct {
		token    string
		expected bool
		desc     string
	}{
		{"battery", true, "Word"},
		{"5", true, "Digit"},
		{"100mah", true, "Alphanumeric"},
		{"the", false, "Stop word"},
		{"!", false, "Punctuation"},
		{"'", false, "Apostrophe"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, isContentToken(tt.token))
		})
	}
}

func TestVocabularyCoverage(t *testing.T) {
	vocab := testVocabulary(t)

	tests := []struct {
		tokens   []string
		expected float64
		desc     string
	}{
		{[]string{"battery", "phone"}, 1, "All known"},
		{[]string{"battery", "zyzzyva"}, 0.5, "Half known"},
		{[]string{"the", ".", "!"}, 1, "No content tokens"},
		{nil, 1, "Empty"},
		{[]string{"battery", "5"}, 0.5, "Unknown number is content"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.InDelta(t, tt.expected, vocab.Coverage(tt.tokens), 1e-9)
		})
	}
}
