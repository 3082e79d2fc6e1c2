package reviewsense

import "math"

// DecisionThreshold is the positive-class probability at or above which a
// result is labelled Positive.
const DecisionThreshold = 0.5

// Calibration is the probability view of a logit.
type Calibration struct {
	Label        Label
	ProbPositive float64 // in (0,1)
	ProbNegative float64 // 1 - ProbPositive
}

// Confidence is the value reported to callers for a model-path result: the
// positive-class probability, regardless of the label. A confidently negative
// review therefore reports a confidence near 0.
func (c Calibration) Confidence() float64 {
	return c.ProbPositive
}

// Probabilities returns the per-label distribution.
func (c Calibration) Probabilities() map[Label]float64 {
	return map[Label]float64{
		Positive: c.ProbPositive,
		Negative: c.ProbNegative,
	}
}

// Calibrate maps a logit to a label and class probabilities.
func Calibrate(logit float64) Calibration {
	p := sigmoid(logit)
	// Keep p strictly inside (0,1) even where float64 saturates.
	p = math.Max(math.SmallestNonzeroFloat64, math.Min(p, math.Nextafter(1, 0)))

	label := Negative
	if p >= DecisionThreshold {
		label = Positive
	}
	return Calibration{
		Label:        label,
		ProbPositive: p,
		ProbNegative: 1 - p,
	}
}

// sigmoid is the logistic function, evaluated so that neither branch
// overflows.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}
