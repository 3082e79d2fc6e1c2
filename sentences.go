package reviewsense

import (
	"context"
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// segmenter splits text into sentences with the punkt English model. The
// underlying tokenizer is built on first use and guarded by a mutex.
type segmenter struct {
	once      sync.Once
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
	err       error
}

func newSegmenter() *segmenter {
	return &segmenter{}
}

// span is one sentence and its byte offsets in the original text.
type span struct {
	text       string
	start, end int
}

func (s *segmenter) segment(text string) []span {
	s.once.Do(func() {
		s.tokenizer, s.err = english.NewSentenceTokenizer(nil)
	})
	if s.err != nil {
		// Without a model the whole text is one sentence.
		return []span{{text: text, start: 0, end: len(text)}}
	}

	s.mu.Lock()
	found := s.tokenizer.Tokenize(text)
	s.mu.Unlock()

	// Offsets are located in text so that text[start:end] is the trimmed
	// sentence; sentences never overlap, so the search resumes at the last end.
	spans := make([]span, 0, len(found))
	cursor := 0
	for _, sent := range found {
		trimmed := strings.TrimSpace(sent.Text)
		if trimmed == "" {
			continue
		}
		at := strings.Index(text[cursor:], trimmed)
		if at < 0 {
			continue
		}
		start := cursor + at
		cursor = start + len(trimmed)
		spans = append(spans, span{text: trimmed, start: start, end: cursor})
	}
	return spans
}

// AnalyzeSentences classifies the whole text and then each of its sentences
// on its own. Blank text returns ErrEmptyInput.
func (a *Analyzer) AnalyzeSentences(ctx context.Context, text string) (Breakdown, error) {
	overall, err := a.Analyze(ctx, text)
	if err != nil {
		return Breakdown{}, err
	}

	spans := a.segmenter.segment(text)
	breakdown := Breakdown{
		Overall:   overall,
		Sentences: make([]SentenceResult, 0, len(spans)),
	}
	for _, sp := range spans {
		result, err := a.Analyze(ctx, sp.text)
		if err != nil {
			continue
		}
		breakdown.Sentences = append(breakdown.Sentences, SentenceResult{
			Text:   sp.text,
			Start:  sp.start,
			End:    sp.end,
			Result: result,
		})
	}
	return breakdown, nil
}
