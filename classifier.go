package reviewsense

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var ErrInference = errors.New("inference failed")

// lstmDirection is one direction of one recurrent layer. The input and
// recurrent biases are folded into a single vector at load time.
type lstmDirection struct {
	wIH  *mat.Dense // 4H x input
	wHH  *mat.Dense // 4H x H
	bias []float64  // 4H
}

type lstmLayer struct {
	forward  lstmDirection
	backward lstmDirection
}

// Classifier is a bidirectional LSTM sentiment model: embedding lookup,
// stacked bidirectional recurrence, mean pooling over time and a linear
// projection to a single logit.
//
// All matrices are read-only after NewClassifier returns, so one Classifier
// may serve any number of goroutines.
type Classifier struct {
	embedding *mat.Dense // V x E
	layers    []lstmLayer
	hidden    int

	output *mat.VecDense // 2H
	bias   float64
}

// NewClassifier validates params and builds the matrices. The parameter
// slices are copied.
func NewClassifier(params *Parameters) (*Classifier, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrShapeMismatch)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	h := params.HiddenDim
	c := &Classifier{
		embedding: mat.NewDense(params.VocabSize, params.EmbeddingDim, clone(params.Embedding)),
		hidden:    h,
		output:    mat.NewVecDense(2*h, clone(params.OutputWeight)),
		bias:      params.OutputBias,
	}

	input := params.EmbeddingDim
	for _, layer := range params.Layers {
		c.layers = append(c.layers, lstmLayer{
			forward:  newDirection(layer.Forward, input, h),
			backward: newDirection(layer.Backward, input, h),
		})
		input = 2 * h
	}
	return c, nil
}

func newDirection(p DirectionParameters, input, hidden int) lstmDirection {
	bias := make([]float64, 4*hidden)
	for i := range bias {
		bias[i] = p.BiasIH[i] + p.BiasHH[i]
	}
	return lstmDirection{
		wIH:  mat.NewDense(4*hidden, input, clone(p.WeightIH)),
		wHH:  mat.NewDense(4*hidden, hidden, clone(p.WeightHH)),
		bias: bias,
	}
}

func clone(data []float64) []float64 {
	return append([]float64(nil), data...)
}

// VocabSize returns the number of rows in the embedding table.
func (c *Classifier) VocabSize() int {
	rows, _ := c.embedding.Dims()
	return rows
}

// EmbeddingDim returns the width of an embedding vector.
func (c *Classifier) EmbeddingDim() int {
	_, cols := c.embedding.Dims()
	return cols
}

// HiddenDim returns the hidden width of one direction.
func (c *Classifier) HiddenDim() int { return c.hidden }

// NumLayers returns the number of stacked bidirectional layers.
func (c *Classifier) NumLayers() int { return len(c.layers) }

// Classify runs the network over an encoded sequence and returns the raw
// logit. The network always runs in evaluation mode: there is no dropout and
// no other source of randomness, so equal inputs give equal logits.
//
// Index errors, non-finite results and numeric panics are reported as errors
// wrapping ErrInference.
func (c *Classifier) Classify(indices []int) (logit float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInference, r)
		}
	}()

	if len(indices) == 0 {
		return 0, fmt.Errorf("%w: empty sequence", ErrInference)
	}
	vocab := c.VocabSize()
	for pos, idx := range indices {
		if idx < 0 || idx >= vocab {
			return 0, fmt.Errorf("%w: index %d at position %d outside [0,%d)", ErrInference, idx, pos, vocab)
		}
	}

	x := c.embed(indices)
	for i := range c.layers {
		x = c.layers[i].run(x, c.hidden)
	}

	logit = mat.Dot(c.output, meanPool(x)) + c.bias
	if math.IsNaN(logit) || math.IsInf(logit, 0) {
		return 0, fmt.Errorf("%w: non-finite logit %v", ErrInference, logit)
	}
	return logit, nil
}

// embed gathers one embedding row per index into an L x E matrix.
func (c *Classifier) embed(indices []int) *mat.Dense {
	x := mat.NewDense(len(indices), c.EmbeddingDim(), nil)
	for t, idx := range indices {
		x.SetRow(t, c.embedding.RawRowView(idx))
	}
	return x
}

// run applies both directions and returns the L x 2H concatenated states.
func (l *lstmLayer) run(x *mat.Dense, hidden int) *mat.Dense {
	steps, _ := x.Dims()
	out := mat.NewDense(steps, 2*hidden, nil)
	l.forward.scan(x, out, 0, false)
	l.backward.scan(x, out, hidden, true)
	return out
}

// scan runs the recurrence over x and writes each hidden state into out at
// columns [offset, offset+H).
func (d *lstmDirection) scan(x, out *mat.Dense, offset int, reverse bool) {
	steps, _ := x.Dims()
	hidden := len(d.bias) / 4

	// Input projections for every step at once: L x 4H.
	var projected mat.Dense
	projected.Mul(x, d.wIH.T())

	h := mat.NewVecDense(hidden, nil)
	cell := make([]float64, hidden)
	gates := make([]float64, 4*hidden)
	var recurrent mat.VecDense

	for s := 0; s < steps; s++ {
		t := s
		if reverse {
			t = steps - 1 - s
		}

		recurrent.MulVec(d.wHH, h)
		row := projected.RawRowView(t)
		for j := range gates {
			gates[j] = row[j] + recurrent.AtVec(j) + d.bias[j]
		}

		state := h.RawVector().Data
		for j := 0; j < hidden; j++ {
			in := sigmoid(gates[j])
			forget := sigmoid(gates[hidden+j])
			candidate := math.Tanh(gates[2*hidden+j])
			output := sigmoid(gates[3*hidden+j])

			cell[j] = forget*cell[j] + in*candidate
			state[j] = output * math.Tanh(cell[j])
		}
		copy(out.RawRowView(t)[offset:offset+hidden], state)
	}
}

// meanPool averages the rows of x.
func meanPool(x *mat.Dense) *mat.VecDense {
	steps, width := x.Dims()
	pooled := mat.NewVecDense(width, nil)
	for t := 0; t < steps; t++ {
		pooled.AddVec(pooled, x.RowView(t))
	}
	pooled.ScaleVec(1/float64(steps), pooled)
	return pooled
}
