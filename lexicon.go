package reviewsense

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"
)

// DefaultLexiconLanguage is the key read from external lexicon files.
const DefaultLexiconLanguage = "english"

// Lexicon holds the indicator word lists used by the fallback heuristic.
// It is immutable once built.
type Lexicon struct {
	positive []string
	negative []string
}

// ExternalLexicon represents the JSON structure for external lexicon files
type ExternalLexicon struct {
	Languages map[string]LanguageLexicon `json:"languages"`
}

// LanguageLexicon contains the word lists for one language
type LanguageLexicon struct {
	Positive []WordEntry `json:"positive,omitempty"`
	Negative []WordEntry `json:"negative,omitempty"`
}

// WordEntry represents an indicator word in JSON format. Sentiment and
// Confidence are accepted for compatibility with scored lexicons but every
// word counts once.
type WordEntry struct {
	Word       string  `json:"word"`
	Sentiment  float64 `json:"sentiment,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// DefaultLexicon returns the built-in English word lists.
func DefaultLexicon() *Lexicon {
	return NewLexicon(defaultPositiveWords, defaultNegativeWords)
}

// NewLexicon builds a lexicon from two word lists. Words are lower-cased,
// trimmed and de-duplicated; blanks are dropped.
func NewLexicon(positive, negative []string) *Lexicon {
	return &Lexicon{
		positive: cleanWords(positive),
		negative: cleanWords(negative),
	}
}

func cleanWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			out = append(out, word)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ReadLexicon parses an external JSON lexicon and returns the lists for
// language. A list missing from the file keeps its built-in words.
func ReadLexicon(r io.Reader, language string) (*Lexicon, error) {
	var external ExternalLexicon
	if err := json.NewDecoder(r).Decode(&external); err != nil {
		return nil, fmt.Errorf("error parsing lexicon JSON: %w", err)
	}

	data, exists := external.Languages[strings.ToLower(language)]
	if !exists {
		return nil, fmt.Errorf("lexicon has no %q section", language)
	}

	positive, negative := defaultPositiveWords, defaultNegativeWords
	if len(data.Positive) > 0 {
		positive = entryWords(data.Positive)
	}
	if len(data.Negative) > 0 {
		negative = entryWords(data.Negative)
	}
	return NewLexicon(positive, negative), nil
}

// LexiconFromFS reads an external lexicon from fsys.
func LexiconFromFS(fsys fs.FS, name, language string) (*Lexicon, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("error reading lexicon file: %w", err)
	}
	defer file.Close()
	return ReadLexicon(file, language)
}

func entryWords(entries []WordEntry) []string {
	words := make([]string, len(entries))
	for i, entry := range entries {
		words[i] = entry.Word
	}
	return words
}

// Positive returns the positive indicator words, sorted.
func (l *Lexicon) Positive() []string { return slices.Clone(l.positive) }

// Negative returns the negative indicator words, sorted.
func (l *Lexicon) Negative() []string { return slices.Clone(l.negative) }

// Size returns the total number of indicator words.
func (l *Lexicon) Size() int { return len(l.positive) + len(l.negative) }

// count returns how many words of list occur as substrings of text. Each word
// counts at most once.
func count(list []string, text string) int {
	n := 0
	for _, word := range list {
		if strings.Contains(text, word) {
			n++
		}
	}
	return n
}

var defaultPositiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful",
	"fantastic", "love", "perfect", "best", "awesome",
}

var defaultNegativeWords = []string{
	"bad", "terrible", "awful", "horrible", "worst",
	"hate", "poor", "disappointing", "useless", "waste",
}
