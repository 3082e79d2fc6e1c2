package reviewsense

import "sync/atomic"

// Availability tracks whether the model artifacts loaded. Each flag starts
// false and is set at most once; nothing ever clears it.
type Availability struct {
	vocabulary atomic.Bool
	classifier atomic.Bool
}

// RecordVocabulary records the outcome of loading the vocabulary.
func (a *Availability) RecordVocabulary(err error) {
	if err == nil {
		a.vocabulary.Store(true)
	}
}

// RecordClassifier records the outcome of loading the classifier.
func (a *Availability) RecordClassifier(err error) {
	if err == nil {
		a.classifier.Store(true)
	}
}

// VocabularyReady reports whether the vocabulary loaded.
func (a *Availability) VocabularyReady() bool { return a.vocabulary.Load() }

// ClassifierReady reports whether the classifier loaded.
func (a *Availability) ClassifierReady() bool { return a.classifier.Load() }

// Ready reports whether the model path can serve requests.
func (a *Availability) Ready() bool {
	return a.VocabularyReady() && a.ClassifierReady()
}
