package reviewsense

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrShapeMismatch = errors.New("parameter shape mismatch")

// DirectionParameters holds one direction of one LSTM layer, laid out the way
// PyTorch exports it: gate rows ordered input, forget, cell, output.
type DirectionParameters struct {
	WeightIH []float64 // 4H x input, row-major
	WeightHH []float64 // 4H x H, row-major
	BiasIH   []float64 // 4H
	BiasHH   []float64 // 4H
}

// LayerParameters holds both directions of one LSTM layer.
type LayerParameters struct {
	Forward  DirectionParameters
	Backward DirectionParameters
}

// Parameters is the serialized form of a trained classifier.
type Parameters struct {
	VocabSize    int
	EmbeddingDim int
	HiddenDim    int
	Dropout      float64 // Recorded from training; never applied at inference

	Embedding []float64 // VocabSize x EmbeddingDim, row-major
	Layers    []LayerParameters

	OutputWeight []float64 // 2H
	OutputBias   float64
}

// Validate checks that every tensor has the size implied by the dimensions.
func (p *Parameters) Validate() error {
	if p.VocabSize < 1 || p.EmbeddingDim < 1 || p.HiddenDim < 1 {
		return fmt.Errorf("%w: vocab=%d embedding=%d hidden=%d", ErrShapeMismatch, p.VocabSize, p.EmbeddingDim, p.HiddenDim)
	}
	if len(p.Layers) == 0 {
		return fmt.Errorf("%w: no recurrent layers", ErrShapeMismatch)
	}
	if err := checkLen("embedding", p.Embedding, p.VocabSize*p.EmbeddingDim); err != nil {
		return err
	}
	gates := 4 * p.HiddenDim
	input := p.EmbeddingDim
	for i, layer := range p.Layers {
		for _, dir := range []struct {
			name   string
			params DirectionParameters
		}{{"forward", layer.Forward}, {"backward", layer.Backward}} {
			prefix := fmt.Sprintf("layer %d %s", i, dir.name)
			if err := checkLen(prefix+" weight_ih", dir.params.WeightIH, gates*input); err != nil {
				return err
			}
			if err := checkLen(prefix+" weight_hh", dir.params.WeightHH, gates*p.HiddenDim); err != nil {
				return err
			}
			if err := checkLen(prefix+" bias_ih", dir.params.BiasIH, gates); err != nil {
				return err
			}
			if err := checkLen(prefix+" bias_hh", dir.params.BiasHH, gates); err != nil {
				return err
			}
		}
		input = 2 * p.HiddenDim
	}
	return checkLen("output weight", p.OutputWeight, 2*p.HiddenDim)
}

func checkLen(name string, data []float64, want int) error {
	if len(data) != want {
		return fmt.Errorf("%w: %s has %d values, want %d", ErrShapeMismatch, name, len(data), want)
	}
	return nil
}

// ReadParameters decodes a gob-encoded Parameters blob.
func ReadParameters(r io.Reader) (*Parameters, error) {
	var params Parameters
	if err := gob.NewDecoder(r).Decode(&params); err != nil {
		return nil, fmt.Errorf("decode parameters: %w", err)
	}
	return &params, nil
}

// Write encodes the parameters with gob.
func (p *Parameters) Write(w io.Writer) error {
	return gob.NewEncoder(w).Encode(p)
}

// WriteArtifacts saves a vocabulary and parameters into dir using the default
// file names.
func WriteArtifacts(dir string, vocab *Vocabulary, params *Parameters) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, DefaultArtifactFiles().Vocabulary), vocab.WriteGob); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if err := writeFile(filepath.Join(dir, DefaultArtifactFiles().Parameters), params.Write); err != nil {
		return fmt.Errorf("write parameters: %w", err)
	}
	return nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
