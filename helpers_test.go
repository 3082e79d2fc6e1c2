package reviewsense

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

var testTokens = []string{
	UnknownToken, PadToken,
	"this", "is", "a", "great", "and", "wonderful", "product",
	"terrible", "awful", "battery", "phone", ".", "!", "'", "s",
}

func testVocabulary(t *testing.T) *Vocabulary {
	t.Helper()
	vocab, err := NewVocabulary(testTokens)
	require.NoError(t, err)
	return vocab
}

// syntheticParams returns small random but deterministic network weights.
func syntheticParams(vocab, embedding, hidden, layers int, seed uint64) *Parameters {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	fill := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = rng.Float64() - 0.5
		}
		return out
	}
	direction := func(input int) DirectionParameters {
		return DirectionParameters{
			WeightIH: fill(4 * hidden * input),
			WeightHH: fill(4 * hidden * hidden),
			BiasIH:   fill(4 * hidden),
			BiasHH:   fill(4 * hidden),
		}
	}

	p := &Parameters{
		VocabSize:    vocab,
		EmbeddingDim: embedding,
		HiddenDim:    hidden,
		Dropout:      0.5,
		Embedding:    fill(vocab * embedding),
		OutputWeight: fill(2 * hidden),
		OutputBias:   rng.Float64() - 0.5,
	}
	input := embedding
	for range layers {
		p.Layers = append(p.Layers, LayerParameters{
			Forward:  direction(input),
			Backward: direction(input),
		})
		input = 2 * hidden
	}
	return p
}

func testClassifier(t *testing.T, vocabSize int) *Classifier {
	t.Helper()
	classifier, err := NewClassifier(syntheticParams(vocabSize, 6, 4, 2, 7))
	require.NoError(t, err)
	return classifier
}

// referenceLogit evaluates the network with plain loops over the raw
// parameter slices.
func referenceLogit(p *Parameters, indices []int) float64 {
	steps := len(indices)
	x := make([][]float64, steps)
	for t, idx := range indices {
		x[t] = p.Embedding[idx*p.EmbeddingDim : (idx+1)*p.EmbeddingDim]
	}

	h := p.HiddenDim
	for _, layer := range p.Layers {
		out := make([][]float64, steps)
		for t := range out {
			out[t] = make([]float64, 2*h)
		}
		referenceDirection(layer.Forward, x, out, h, 0, false)
		referenceDirection(layer.Backward, x, out, h, h, true)
		x = out
	}

	var logit float64
	for j := 0; j < 2*h; j++ {
		var mean float64
		for t := range x {
			mean += x[t][j]
		}
		logit += p.OutputWeight[j] * mean / float64(steps)
	}
	return logit + p.OutputBias
}

func referenceDirection(d DirectionParameters, x, out [][]float64, h, offset int, reverse bool) {
	input := len(x[0])
	state := make([]float64, h)
	cell := make([]float64, h)
	logistic := func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }

	for s := range x {
		t := s
		if reverse {
			t = len(x) - 1 - s
		}
		gates := make([]float64, 4*h)
		for g := range gates {
			sum := d.BiasIH[g] + d.BiasHH[g]
			for k := 0; k < input; k++ {
				sum += d.WeightIH[g*input+k] * x[t][k]
			}
			for k := 0; k < h; k++ {
				sum += d.WeightHH[g*h+k] * state[k]
			}
			gates[g] = sum
		}
		next := make([]float64, h)
		for j := 0; j < h; j++ {
			i := logistic(gates[j])
			f := logistic(gates[h+j])
			g := math.Tanh(gates[2*h+j])
			o := logistic(gates[3*h+j])
			cell[j] = f*cell[j] + i*g
			next[j] = o * math.Tanh(cell[j])
		}
		state = next
		copy(out[t][offset:], state)
	}
}
