package reviewsense

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// isStopWord reports whether the stopwords library filters token for the
// given ISO 639-1 language code. The library does not export its lists, so a
// token counts as a stop word when cleaning removes it.
func isStopWord(token, langCode string) bool {
	cleaned := strings.TrimSpace(stopwords.CleanString(token, langCode, false))
	return cleaned == ""
}

// isContentToken reports whether a token carries lexical content. Tokens with
// a digit always do; otherwise the token needs a letter and must not be a stop
// word. The stopwords cleaner strips digits, so numbers never reach it.
func isContentToken(token string) bool {
	hasLetter := false
	for _, r := range token {
		if unicode.IsDigit(r) {
			return true
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter && !isStopWord(token, "en")
}

// Coverage returns the fraction of content tokens present in the vocabulary.
// Text without content tokens has full coverage, since nothing is missing.
func (v *Vocabulary) Coverage(tokens []string) float64 {
	var content, known int
	for _, token := range tokens {
		if !isContentToken(token) {
			continue
		}
		content++
		if v.Contains(token) {
			known++
		}
	}
	if content == 0 {
		return 1
	}
	return float64(known) / float64(content)
}
