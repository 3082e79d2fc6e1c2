package reviewsense

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
)

// ArtifactFiles names the artifact files inside a model directory.
type ArtifactFiles struct {
	Vocabulary string // gob map[string]int, or one token per line when it ends in .txt
	Parameters string // gob Parameters
}

// DefaultArtifactFiles returns the file names written by WriteArtifacts.
func DefaultArtifactFiles() ArtifactFiles {
	return ArtifactFiles{
		Vocabulary: "vocab.gob",
		Parameters: "parameters.gob",
	}
}

// Artifacts holds whatever loaded at startup together with the availability
// flags describing it. A nil Vocabulary or Classifier means that artifact is
// unavailable.
type Artifacts struct {
	Vocabulary   *Vocabulary
	Classifier   *Classifier
	Availability *Availability
}

// ArtifactsFromDisk loads artifacts from the directory dir.
func ArtifactsFromDisk(dir string, files ArtifactFiles, logger *slog.Logger) *Artifacts {
	return LoadArtifacts(os.DirFS(dir), files, logger)
}

// LoadArtifacts attempts each artifact exactly once. Failures are logged and
// recorded as unavailable; they never abort startup.
func LoadArtifacts(fsys fs.FS, files ArtifactFiles, logger *slog.Logger) *Artifacts {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	artifacts := &Artifacts{Availability: &Availability{}}

	vocab, err := loadVocabulary(fsys, files.Vocabulary)
	if err != nil {
		logger.Error("vocabulary unavailable", "file", files.Vocabulary, "error", err)
	} else {
		artifacts.Vocabulary = vocab
		logger.Info("vocabulary loaded", "file", files.Vocabulary, "size", vocab.Size())
	}
	artifacts.Availability.RecordVocabulary(err)

	classifier, err := loadClassifier(fsys, files.Parameters)
	if err == nil && vocab != nil && classifier.VocabSize() != vocab.Size() {
		err = fmt.Errorf("%w: embedding has %d rows, vocabulary has %d entries",
			ErrShapeMismatch, classifier.VocabSize(), vocab.Size())
	}
	if err != nil {
		logger.Error("classifier unavailable", "file", files.Parameters, "error", err)
	} else {
		artifacts.Classifier = classifier
		logger.Info("classifier loaded",
			"file", files.Parameters,
			"layers", classifier.NumLayers(),
			"hidden", classifier.HiddenDim(),
			"embedding", classifier.EmbeddingDim())
	}
	artifacts.Availability.RecordClassifier(err)

	return artifacts
}

func loadVocabulary(fsys fs.FS, name string) (*Vocabulary, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.EqualFold(path.Ext(name), ".txt") {
		return ReadVocabularyText(file)
	}
	return ReadVocabularyGob(file)
}

func loadClassifier(fsys fs.FS, name string) (*Classifier, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	params, err := ReadParameters(file)
	if err != nil {
		return nil, err
	}
	return NewClassifier(params)
}

// Summary describes loaded artifacts for display.
type Summary struct {
	VocabularyReady bool
	ClassifierReady bool

	VocabularySize int
	UnknownIndex   int
	PadIndex       int
	Specials       []string // reserved tokens present in the vocabulary

	Layers       int
	HiddenDim    int
	EmbeddingDim int
}

// Summary reports the availability and shape of the artifacts.
func (a *Artifacts) Summary() Summary {
	s := Summary{
		VocabularyReady: a.Availability.VocabularyReady(),
		ClassifierReady: a.Availability.ClassifierReady(),
	}
	if a.Vocabulary != nil {
		s.VocabularySize = a.Vocabulary.Size()
		s.UnknownIndex = a.Vocabulary.UnknownIndex()
		s.PadIndex = a.Vocabulary.PadIndex()
		s.Specials = a.Vocabulary.specials()
	}
	if a.Classifier != nil {
		s.Layers = a.Classifier.NumLayers()
		s.HiddenDim = a.Classifier.HiddenDim()
		s.EmbeddingDim = a.Classifier.EmbeddingDim()
	}
	return s
}
