package reviewsense

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	vocab := testVocabulary(t)
	pad := vocab.PadIndex()
	unk := vocab.UnknownIndex()

	tests := []struct {
		tokens   []string
		padLen   int
		expected []int
		desc     string
	}{
		{[]string{"great", "product"}, 4, []int{5, 8, pad, pad}, "Short input is right-padded"},
		{[]string{"this", "is", "a", "great"}, 4, []int{2, 3, 4, 5}, "Exact length"},
		{[]string{"this", "is", "a", "great", "product"}, 3, []int{2, 3, 4}, "Long input keeps the prefix"},
		{[]string{"zyzzyva", "great"}, 2, []int{unk, 5}, "Unknown token"},
		{nil, 3, []int{pad, pad, pad}, "No tokens"},
		{[]string{"great"}, 0, []int{}, "Zero length"},
		{[]string{"great"}, -2, []int{}, "Negative length"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encode(tt.tokens, tt.padLen, vocab))
		})
	}
}

func TestEncodeProperties(t *testing.T) {
	vocab := testVocabulary(t)
	tokenizer := NewTokenizer()
	texts := []string{
		"great",
		"This is a great and wonderful product!",
		"terrible awful battery, terrible phone. this is a product it's a phone",
		"completely unknown words everywhere",
	}

	for _, text := range texts {
		tokens := tokenizer.Tokenize(text)
		for padLen := 1; padLen <= 20; padLen++ {
			encoded := Encode(tokens, padLen, vocab)
			assert.Len(t, encoded, padLen)

			if len(tokens) <= padLen {
				for _, idx := range encoded[len(tokens):] {
					assert.Equal(t, vocab.PadIndex(), idx)
				}
			} else {
				assert.Equal(t, Encode(tokens[:padLen], padLen, vocab), encoded)
			}
		}
	}
}

func TestEncodeSeqMatchesEncode(t *testing.T) {
	vocab := testVocabulary(t)
	tokenizer := NewTokenizer()
	text := "This is a great and wonderful product. Terrible battery!"

	for _, padLen := range []int{0, 1, 5, 12, 40} {
		encoded, consumed := EncodeSeq(tokenizer.Tokens(text), padLen, vocab)
		assert.Equal(t, Encode(tokenizer.Tokenize(text), padLen, vocab), encoded)
		assert.LessOrEqual(t, consumed, max(padLen, 0))
	}
}

func TestEncodeSeqStopsPulling(t *testing.T) {
	vocab := testVocabulary(t)
	pulled := 0
	seq := func(yield func(string) bool) {
		for {
			pulled++
			if !yield("great") {
				return
			}
		}
	}

	encoded, consumed := EncodeSeq(seq, 3, vocab)
	assert.Equal(t, []int{5, 5, 5}, encoded)
	assert.Equal(t, 3, consumed)
	assert.Equal(t, 4, pulled)
}
