package reviewsense

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"sort"
)

const (
	UnknownToken = "<unk>"
	PadToken     = "<pad>"

	defaultUnknownIndex = 0
	defaultPadIndex     = 1
)

var (
	ErrVocabularyEmpty   = errors.New("vocabulary is empty")
	ErrVocabularyIndices = errors.New("vocabulary indices are not dense")
)

// Vocabulary maps tokens to embedding indices. It is immutable once built and
// safe for concurrent use.
type Vocabulary struct {
	tokenToIndex map[string]int
	tokens       []string

	unk int
	pad int
}

// NewVocabulary builds a vocabulary where each token's index is its position
// in tokens. Duplicate tokens are an error.
func NewVocabulary(tokens []string) (*Vocabulary, error) {
	if len(tokens) == 0 {
		return nil, ErrVocabularyEmpty
	}
	mapping := make(map[string]int, len(tokens))
	for i, token := range tokens {
		if _, found := mapping[token]; found {
			return nil, fmt.Errorf("duplicate token %q at index %d", token, i)
		}
		mapping[token] = i
	}
	return newVocabulary(mapping, append([]string(nil), tokens...)), nil
}

// VocabularyFromMapping builds a vocabulary from a token → index mapping. The
// indices must cover [0, len(mapping)) exactly once.
func VocabularyFromMapping(mapping map[string]int) (*Vocabulary, error) {
	if len(mapping) == 0 {
		return nil, ErrVocabularyEmpty
	}
	tokens := make([]string, len(mapping))
	seen := make([]bool, len(mapping))
	for token, idx := range mapping {
		if idx < 0 || idx >= len(mapping) || seen[idx] {
			return nil, fmt.Errorf("%w: token %q has index %d", ErrVocabularyIndices, token, idx)
		}
		seen[idx] = true
		tokens[idx] = token
	}
	copied := make(map[string]int, len(mapping))
	for token, idx := range mapping {
		copied[token] = idx
	}
	return newVocabulary(copied, tokens), nil
}

func newVocabulary(mapping map[string]int, tokens []string) *Vocabulary {
	v := &Vocabulary{tokenToIndex: mapping, tokens: tokens}

	v.unk = defaultUnknownIndex
	if idx, found := mapping[UnknownToken]; found {
		v.unk = idx
	}

	v.pad = defaultPadIndex
	if idx, found := mapping[PadToken]; found {
		v.pad = idx
	} else if v.pad >= len(tokens) {
		v.pad = len(tokens) - 1
	}
	return v
}

// Lookup returns the index of token, or the unknown index.
func (v *Vocabulary) Lookup(token string) int {
	if idx, found := v.tokenToIndex[token]; found {
		return idx
	}
	return v.unk
}

// Contains reports whether token is in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, found := v.tokenToIndex[token]
	return found
}

// Token returns the token stored at idx.
func (v *Vocabulary) Token(idx int) (string, bool) {
	if idx < 0 || idx >= len(v.tokens) {
		return "", false
	}
	return v.tokens[idx], true
}

// UnknownIndex returns the index used for out-of-vocabulary tokens.
func (v *Vocabulary) UnknownIndex() int { return v.unk }

// PadIndex returns the index used for padding.
func (v *Vocabulary) PadIndex() int { return v.pad }

// Size returns the number of entries.
func (v *Vocabulary) Size() int { return len(v.tokens) }

// ReadVocabularyGob decodes a gob-encoded map[string]int.
func ReadVocabularyGob(r io.Reader) (*Vocabulary, error) {
	var mapping map[string]int
	if err := gob.NewDecoder(r).Decode(&mapping); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	return VocabularyFromMapping(mapping)
}

// ReadVocabularyText reads one token per line; the line number is the index.
func ReadVocabularyText(r io.Reader) (*Vocabulary, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return NewVocabulary(tokens)
}

// WriteGob encodes the vocabulary as a map[string]int.
func (v *Vocabulary) WriteGob(w io.Writer) error {
	return gob.NewEncoder(w).Encode(v.tokenToIndex)
}

// Tokens returns the entries ordered by index.
func (v *Vocabulary) Tokens() []string {
	return append([]string(nil), v.tokens...)
}

// specials returns the reserved tokens present in the vocabulary, sorted.
func (v *Vocabulary) specials() []string {
	var out []string
	for _, token := range []string{UnknownToken, PadToken} {
		if v.Contains(token) {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}
