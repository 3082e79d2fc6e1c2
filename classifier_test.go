package reviewsense

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierMatchesReference(t *testing.T) {
	tests := []struct {
		vocab, embedding, hidden, layers int
		indices                          []int
		desc                             string
	}{
		{5, 3, 2, 1, []int{0, 1, 2, 3, 4}, "Single layer"},
		{17, 6, 4, 2, []int{2, 3, 4, 5, 8, 1, 1, 1}, "Two layers with padding"},
		{9, 4, 3, 3, []int{8}, "One step, three layers"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			params := syntheticParams(tt.vocab, tt.embedding, tt.hidden, tt.layers, 42)
			classifier, err := NewClassifier(params)
			require.NoError(t, err)

			logit, err := classifier.Classify(tt.indices)
			require.NoError(t, err)
			assert.InDelta(t, referenceLogit(params, tt.indices), logit, 1e-9)
		})
	}
}

func TestClassifierZeroWeights(t *testing.T) {
	params := syntheticParams(4, 3, 2, 2, 1)
	for i := range params.OutputWeight {
		params.OutputWeight[i] = 0
	}
	params.OutputBias = 0.25

	classifier, err := NewClassifier(params)
	require.NoError(t, err)

	logit, err := classifier.Classify([]int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.25, logit)
}

func TestClassifierIsDeterministic(t *testing.T) {
	classifier := testClassifier(t, len(testTokens))
	indices := []int{2, 3, 4, 5, 6, 7, 8, 1, 1, 1}

	want, err := classifier.Classify(indices)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = classifier.Classify(indices)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestClassifierDoesNotAliasParameters(t *testing.T) {
	params := syntheticParams(4, 3, 2, 1, 3)
	classifier, err := NewClassifier(params)
	require.NoError(t, err)

	before, err := classifier.Classify([]int{1, 2})
	require.NoError(t, err)

	for i := range params.Embedding {
		params.Embedding[i] = 100
	}
	after, err := classifier.Classify([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestClassifierErrors(t *testing.T) {
	classifier := testClassifier(t, 5)

	tests := []struct {
		indices []int
		desc    string
	}{
		{nil, "Empty sequence"},
		{[]int{0, 5}, "Index past the end"},
		{[]int{-1}, "Negative index"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := classifier.Classify(tt.indices)
			assert.ErrorIs(t, err, ErrInference)
		})
	}

	t.Run("Non-finite logit", func(t *testing.T) {
		params := syntheticParams(3, 2, 2, 1, 9)
		params.OutputBias = math.NaN()
		classifier, err := NewClassifier(params)
		require.NoError(t, err)

		_, err = classifier.Classify([]int{0})
		assert.ErrorIs(t, err, ErrInference)
	})
}

func TestClassifierShape(t *testing.T) {
	classifier := testClassifier(t, 11)
	assert.Equal(t, 11, classifier.VocabSize())
	assert.Equal(t, 6, classifier.EmbeddingDim())
	assert.Equal(t, 4, classifier.HiddenDim())
	assert.Equal(t, 2, classifier.NumLayers())
}

func TestNewClassifierRejectsBadShapes(t *testing.T) {
	tests := []struct {
		mutate func(p *Parameters)
		desc   string
	}{
		{func(p *Parameters) { p.Embedding = p.Embedding[1:] }, "Short embedding"},
		{func(p *Parameters) { p.Layers = nil }, "No layers"},
		{func(p *Parameters) { p.Layers[1].Backward.WeightIH = p.Layers[1].Backward.WeightIH[:3] }, "Second layer input width"},
		{func(p *Parameters) { p.Layers[0].Forward.BiasHH = nil }, "Missing bias"},
		{func(p *Parameters) { p.OutputWeight = append(p.OutputWeight, 1) }, "Output width"},
		{func(p *Parameters) { p.HiddenDim = 0 }, "Zero hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			params := syntheticParams(4, 3, 2, 2, 5)
			tt.mutate(params)
			_, err := NewClassifier(params)
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}

	_, err := NewClassifier(nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
