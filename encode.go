package reviewsense

import "iter"

// Encode maps tokens to a fixed-length index sequence of padLen entries.
// Short inputs are right-padded with the pad index, long inputs keep their
// first padLen tokens. Out-of-vocabulary tokens map to the unknown index.
// A padLen below 1 yields an empty sequence.
func Encode(tokens []string, padLen int, vocab *Vocabulary) []int {
	if padLen < 1 {
		return []int{}
	}
	out := make([]int, padLen)
	n := min(len(tokens), padLen)
	for i := 0; i < n; i++ {
		out[i] = vocab.Lookup(tokens[i])
	}
	for i := n; i < padLen; i++ {
		out[i] = vocab.pad
	}
	return out
}

// EncodeSeq is Encode over a lazy token sequence. It stops pulling tokens
// once padLen have been read and also returns the number of tokens consumed.
func EncodeSeq(tokens iter.Seq[string], padLen int, vocab *Vocabulary) ([]int, int) {
	if padLen < 1 {
		return []int{}, 0
	}
	out := make([]int, padLen)
	n := 0
	for token := range tokens {
		if n == padLen {
			break
		}
		out[n] = vocab.Lookup(token)
		n++
	}
	for i := n; i < padLen; i++ {
		out[i] = vocab.pad
	}
	return out, n
}
