package reviewsense

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer turns review text into a normalized token sequence.
type Tokenizer interface {
	Tokens(string) iter.Seq[string]
	Tokenize(string) []string
}

// basicTokenizer splits text with the basic-English rule set: punctuation is
// padded into its own token, a handful of separators become whitespace and
// everything is lower-cased.
type basicTokenizer struct {
	sanitizer *strings.Replacer
	rules     *strings.Replacer
	form      norm.Form
}

type TokenizerOptFunc func(*basicTokenizer)

// UsingSanitizer replaces the replacer applied before normalization.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *basicTokenizer) {
		tokenizer.sanitizer = x
	}
}

// UsingRules replaces the punctuation rule set.
func UsingRules(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *basicTokenizer) {
		tokenizer.rules = x
	}
}

// UsingNormalization selects the Unicode normalization form.
func UsingNormalization(form norm.Form) TokenizerOptFunc {
	return func(tokenizer *basicTokenizer) {
		tokenizer.form = form
	}
}

// NewTokenizer returns the default basic-English tokenizer.
func NewTokenizer(opts ...TokenizerOptFunc) Tokenizer {
	tok := &basicTokenizer{
		sanitizer: sanitizer,
		rules:     basicEnglishRules,
		form:      norm.NFKC,
	}
	for _, applyOpt := range opts {
		applyOpt(tok)
	}
	return tok
}

// normalize applies sanitization, Unicode normalization, lower-casing and the
// punctuation rules, leaving a whitespace-separated string.
func (t *basicTokenizer) normalize(text string) string {
	clean := t.sanitizer.Replace(text)
	clean = t.form.String(clean)
	// A Caser keeps state between calls, so each call gets its own.
	clean = cases.Lower(language.Und).String(clean)
	return t.rules.Replace(clean)
}

// Tokens yields tokens lazily. The sequence is restartable: ranging over it
// again re-tokenizes the same text.
func (t *basicTokenizer) Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}
		for field := range strings.FieldsSeq(t.normalize(text)) {
			if !yield(field) {
				return
			}
		}
	}
}

// Tokenize returns all tokens of text.
func (t *basicTokenizer) Tokenize(text string) []string {
	return slices.Collect(t.Tokens(text))
}

var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")

var basicEnglishRules = strings.NewReplacer(
	"<br />", " ",
	"'", " '  ",
	`"`, "",
	".", " . ",
	",", " , ",
	"(", " ( ",
	")", " ) ",
	"!", " ! ",
	"?", " ? ",
	";", " ",
	":", " ")
