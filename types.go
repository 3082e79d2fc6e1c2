package reviewsense

// Label represents a sentiment category.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral" // Only produced by the fallback heuristic
)

// Provenance records which path produced a Result.
type Provenance string

const (
	FromModel    Provenance = "model"
	FromFallback Provenance = "fallback"
)

// ModelType returns the name reported to API clients for the path.
func (p Provenance) ModelType() string {
	if p == FromModel {
		return "bilstm"
	}
	return "heuristic"
}

// Result is the outcome of analyzing one review.
//
// A Result is built once per request and never modified afterwards. The
// Probabilities map is only populated on the model path.
type Result struct {
	Label         Label
	Confidence    float64           // 0.0 to 1.0; positive-class probability on the model path
	Probabilities map[Label]float64 // nil for fallback results
	Provenance    Provenance

	Tokens   int     // Number of tokens produced before padding/truncation
	Coverage float64 // Fraction of content tokens found in the vocabulary (model path only)
}

// ProbabilityOf returns the probability assigned to label, or 0 when the
// result carries no distribution.
func (r Result) ProbabilityOf(label Label) float64 {
	if r.Probabilities == nil {
		return 0
	}
	return r.Probabilities[label]
}

// SentenceResult pairs a sentence with its own analysis.
type SentenceResult struct {
	Text   string
	Start  int // Start position in original text
	End    int // End position in original text
	Result Result
}

// Breakdown holds an overall result together with per-sentence results.
type Breakdown struct {
	Overall   Result
	Sentences []SentenceResult
}

// RatingMismatch reports whether a star rating contradicts the label: a
// rating of 4 or 5 with a negative label, or 1 or 2 with a positive label.
// A rating of 0 means no rating was supplied.
func RatingMismatch(label Label, rating int) bool {
	switch {
	case rating <= 0:
		return false
	case rating >= 4:
		return label == Negative
	case rating <= 2:
		return label == Positive
	}
	return false
}
