package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type inspectOutput struct {
	ModelDir        string   `json:"model_dir"`
	VocabularyFile  string   `json:"vocabulary_file"`
	ParametersFile  string   `json:"parameters_file"`
	VocabularyReady bool     `json:"vocabulary_ready"`
	ClassifierReady bool     `json:"classifier_ready"`
	Ready           bool     `json:"ready"`
	VocabularySize  int      `json:"vocabulary_size"`
	UnknownIndex    int      `json:"unknown_index"`
	PadIndex        int      `json:"pad_index"`
	Specials        []string `json:"specials"`
	Layers          int      `json:"layers"`
	HiddenDim       int      `json:"hidden_dim"`
	EmbeddingDim    int      `json:"embedding_dim"`
	PadLength       int      `json:"pad_length"`
	LexiconWords    int      `json:"lexicon_words"`
	Breaker         string   `json:"breaker"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show artifact availability and model shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			artifacts, err := ctx.loadArtifacts(logger)
			if err != nil {
				return err
			}
			analyzer, err := ctx.newAnalyzer(artifacts, logger)
			if err != nil {
				return err
			}

			summary := artifacts.Summary()
			out := inspectOutput{
				ModelDir:        cfg.ModelDir,
				VocabularyFile:  filepath.Join(cfg.ModelDir, cfg.VocabularyFile),
				ParametersFile:  filepath.Join(cfg.ModelDir, cfg.ParametersFile),
				VocabularyReady: summary.VocabularyReady,
				ClassifierReady: summary.ClassifierReady,
				Ready:           analyzer.Ready(),
				VocabularySize:  summary.VocabularySize,
				UnknownIndex:    summary.UnknownIndex,
				PadIndex:        summary.PadIndex,
				Specials:        summary.Specials,
				Layers:          summary.Layers,
				HiddenDim:       summary.HiddenDim,
				EmbeddingDim:    summary.EmbeddingDim,
				PadLength:       analyzer.Config().PadLength,
				LexiconWords:    analyzer.LexiconSize(),
				Breaker:         analyzer.BreakerState(),
			}
			if jsonOut {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable(w, []string{"Property", "Value"}, inspectRows(out), []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func inspectRows(out inspectOutput) [][]string {
	rows := [][]string{
		{"Vocabulary file", out.VocabularyFile},
		{"Vocabulary loaded", yesNo(out.VocabularyReady)},
		{"Parameters file", out.ParametersFile},
		{"Classifier loaded", yesNo(out.ClassifierReady)},
		{"Model ready", yesNo(out.Ready)},
	}
	if out.VocabularyReady {
		rows = append(rows,
			[]string{"Vocabulary size", strconv.Itoa(out.VocabularySize)},
			[]string{"Unknown index", strconv.Itoa(out.UnknownIndex)},
			[]string{"Pad index", strconv.Itoa(out.PadIndex)},
			[]string{"Reserved tokens", strings.Join(out.Specials, " ")},
		)
	}
	if out.ClassifierReady {
		rows = append(rows,
			[]string{"LSTM layers", strconv.Itoa(out.Layers)},
			[]string{"Hidden size", strconv.Itoa(out.HiddenDim)},
			[]string{"Embedding size", strconv.Itoa(out.EmbeddingDim)},
		)
	}
	return append(rows,
		[]string{"Pad length", strconv.Itoa(out.PadLength)},
		[]string{"Fallback lexicon words", strconv.Itoa(out.LexiconWords)},
		[]string{"Circuit breaker", out.Breaker},
	)
}
