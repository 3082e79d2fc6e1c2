package reviewsense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"
)

var ErrEmptyInput = errors.New("review text is empty")

// Reasons reported when the model path cannot produce a result.
const (
	ReasonVocabulary = "vocabulary_unavailable"
	ReasonClassifier = "classifier_unavailable"
	ReasonInference  = "inference_error"
	ReasonBreaker    = "breaker_open"
)

// UnavailableError reports that the model path could not classify a text.
// Analyze turns it into a fallback result; it never reaches callers.
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "model unavailable: " + e.Reason
	}
	return fmt.Sprintf("model unavailable: %s: %v", e.Reason, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// AnalyzerConfig configures an Analyzer.
type AnalyzerConfig struct {
	PadLength          int           // Encoded sequence length
	FallbackConfidence float64       // Confidence reported by the heuristic
	BreakerFailures    int           // Consecutive inference errors that open the breaker; 0 disables it
	BreakerCooldown    time.Duration // Time the breaker stays open
}

// DefaultAnalyzerConfig returns standard configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		PadLength:          100,
		FallbackConfidence: DefaultFallbackConfidence,
		BreakerFailures:    5,
		BreakerCooldown:    30 * time.Second,
	}
}

// Analyzer classifies reviews with the trained model and falls back to the
// lexical heuristic whenever the model cannot answer. It is built once at
// startup and shared by all requests.
type Analyzer struct {
	vocab        *Vocabulary
	classifier   *Classifier
	availability *Availability

	tokenizer Tokenizer
	lexicon   *Lexicon
	heuristic *Heuristic
	breaker   *gobreaker.CircuitBreaker
	segmenter *segmenter
	config    AnalyzerConfig

	logger   *slog.Logger
	recorder Recorder
	clock    clockwork.Clock
}

// NewAnalyzer builds an Analyzer over loaded artifacts. A nil artifacts value
// behaves like a failed load of both artifacts.
func NewAnalyzer(artifacts *Artifacts, config AnalyzerConfig, opts ...AnalyzerOpt) *Analyzer {
	var (
		vocab        *Vocabulary
		classifier   *Classifier
		availability = &Availability{}
	)
	if artifacts != nil {
		vocab, classifier = artifacts.Vocabulary, artifacts.Classifier
		if artifacts.Availability != nil {
			availability = artifacts.Availability
		}
	}
	defaults := DefaultAnalyzerConfig()
	if config.PadLength < 1 {
		config.PadLength = defaults.PadLength
	}
	if config.FallbackConfidence <= 0 || config.FallbackConfidence > 1 {
		config.FallbackConfidence = defaults.FallbackConfidence
	}

	a := &Analyzer{
		vocab:        vocab,
		classifier:   classifier,
		availability: availability,
		tokenizer:    NewTokenizer(),
		segmenter:    newSegmenter(),
		config:       config,
		logger:       slog.New(slog.DiscardHandler),
		recorder:     noopRecorder{},
		clock:        clockwork.NewRealClock(),
	}
	for _, applyOpt := range opts {
		applyOpt(a)
	}

	a.heuristic = NewHeuristic(a.lexicon, a.tokenizer, config.FallbackConfidence)
	if config.BreakerFailures > 0 {
		a.breaker = a.newBreaker(config)
	}
	return a
}

func (a *Analyzer) newBreaker(config AnalyzerConfig) *gobreaker.CircuitBreaker {
	threshold := uint32(config.BreakerFailures)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "classifier",
		MaxRequests: 1,
		Timeout:     config.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			a.logger.Warn("circuit breaker state changed",
				"component", name,
				"from", from.String(),
				"to", to.String())
			a.recorder.ObserveBreakerState(to.String())
		},
	})
}

// Ready reports whether the model path is available.
func (a *Analyzer) Ready() bool {
	return a.availability.Ready()
}

// Availability returns the artifact availability flags.
func (a *Analyzer) Availability() *Availability {
	return a.availability
}

// BreakerState returns the circuit breaker state, or "disabled".
func (a *Analyzer) BreakerState() string {
	if a.breaker == nil {
		return "disabled"
	}
	return a.breaker.State().String()
}

// LexiconSize returns the number of words the fallback heuristic matches.
func (a *Analyzer) LexiconSize() int {
	return a.heuristic.lexicon.Size()
}

// Config returns the effective configuration.
func (a *Analyzer) Config() AnalyzerConfig {
	return a.config
}

// Analyze classifies one review. The only error is ErrEmptyInput for blank
// text; any model-path failure yields a fallback Result instead.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	start := a.clock.Now()
	result, err := a.classify(text)
	if err != nil {
		reason := ReasonInference
		var unavailable *UnavailableError
		if errors.As(err, &unavailable) {
			reason = unavailable.Reason
		}
		a.logger.WarnContext(ctx, "using fallback heuristic", "reason", reason, "error", err)
		a.recorder.ObserveFallback(reason)
		result = a.heuristic.Classify(text)
	}
	a.recorder.ObserveInference(result.Provenance, result.Label, a.clock.Since(start))
	return result, nil
}

// classify runs the model path.
func (a *Analyzer) classify(text string) (Result, error) {
	if a.vocab == nil || !a.availability.VocabularyReady() {
		return Result{}, &UnavailableError{Reason: ReasonVocabulary}
	}
	if a.classifier == nil || !a.availability.ClassifierReady() {
		return Result{}, &UnavailableError{Reason: ReasonClassifier}
	}

	tokens := a.tokenizer.Tokenize(text)
	indices := Encode(tokens, a.config.PadLength, a.vocab)

	logit, err := a.run(indices)
	if err != nil {
		return Result{}, err
	}

	calibration := Calibrate(logit)
	window := tokens[:min(len(tokens), a.config.PadLength)]
	return Result{
		Label:         calibration.Label,
		Confidence:    calibration.Confidence(),
		Probabilities: calibration.Probabilities(),
		Provenance:    FromModel,
		Tokens:        len(tokens),
		Coverage:      a.vocab.Coverage(window),
	}, nil
}

// run invokes the classifier, through the breaker when one is configured.
func (a *Analyzer) run(indices []int) (float64, error) {
	if a.breaker == nil {
		logit, err := a.classifier.Classify(indices)
		if err != nil {
			return 0, &UnavailableError{Reason: ReasonInference, Err: err}
		}
		return logit, nil
	}

	out, err := a.breaker.Execute(func() (interface{}, error) {
		return a.classifier.Classify(indices)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return 0, &UnavailableError{Reason: ReasonBreaker, Err: err}
	case err != nil:
		return 0, &UnavailableError{Reason: ReasonInference, Err: err}
	}
	return out.(float64), nil
}
