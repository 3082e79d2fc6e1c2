package reviewsense

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// An AnalyzerOpt represents a setting that changes how an Analyzer is built.
//
// For example, it might replace the fallback word lists:
//
//	analyzer := reviewsense.NewAnalyzer(artifacts, config, reviewsense.WithLexicon(lexicon))
type AnalyzerOpt func(a *Analyzer)

// WithLogger sets the logger for load and fallback events.
func WithLogger(logger *slog.Logger) AnalyzerOpt {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(recorder Recorder) AnalyzerOpt {
	return func(a *Analyzer) {
		if recorder != nil {
			a.recorder = recorder
		}
	}
}

// WithClock sets the clock used to time inference.
func WithClock(clock clockwork.Clock) AnalyzerOpt {
	return func(a *Analyzer) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithLexicon replaces the fallback word lists.
func WithLexicon(lexicon *Lexicon) AnalyzerOpt {
	return func(a *Analyzer) {
		a.lexicon = lexicon
	}
}

// WithTokenizer specifies the Tokenizer to use for both paths.
func WithTokenizer(tokenizer Tokenizer) AnalyzerOpt {
	return func(a *Analyzer) {
		if tokenizer != nil {
			a.tokenizer = tokenizer
		}
	}
}

// Recorder receives inference events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveInference(provenance Provenance, label Label, elapsed time.Duration)
	ObserveFallback(reason string)
	ObserveBreakerState(state string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveInference(Provenance, Label, time.Duration) {}
func (noopRecorder) ObserveFallback(string)                          {}
func (noopRecorder) ObserveBreakerState(string)                      {}
