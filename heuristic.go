package reviewsense

import "strings"

// DefaultFallbackConfidence is the fixed confidence of every heuristic result.
const DefaultFallbackConfidence = 0.8

// Heuristic is the lexical fallback classifier. It needs no trained
// artifacts, so it is always available.
type Heuristic struct {
	lexicon    *Lexicon
	tokenizer  Tokenizer
	confidence float64
}

// NewHeuristic returns a heuristic over lexicon. A nil lexicon selects the
// built-in lists and a nil tokenizer the default one.
func NewHeuristic(lexicon *Lexicon, tokenizer Tokenizer, confidence float64) *Heuristic {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	return &Heuristic{lexicon: lexicon, tokenizer: tokenizer, confidence: confidence}
}

// Counts returns the number of positive and negative indicator words found in
// the normalized text.
func (h *Heuristic) Counts(text string) (positive, negative int) {
	normalized := strings.Join(h.tokenizer.Tokenize(text), " ")
	return count(h.lexicon.positive, normalized), count(h.lexicon.negative, normalized)
}

// Label classifies text by comparing indicator counts. Ties, including no
// matches at all, are Neutral.
func (h *Heuristic) Label(text string) Label {
	return labelFor(h.Counts(text))
}

func labelFor(positive, negative int) Label {
	switch {
	case positive > negative:
		return Positive
	case negative > positive:
		return Negative
	default:
		return Neutral
	}
}

// Classify returns a fallback Result for text.
func (h *Heuristic) Classify(text string) Result {
	return Result{
		Label:      h.Label(text),
		Confidence: h.confidence,
		Provenance: FromFallback,
		Tokens:     countSeq(h.tokenizer, text),
	}
}

func countSeq(tokenizer Tokenizer, text string) int {
	n := 0
	for range tokenizer.Tokens(text) {
		n++
	}
	return n
}
