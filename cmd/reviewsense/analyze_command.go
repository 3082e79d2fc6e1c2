package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/reviewsense"
)

type analyzeOutput struct {
	Sentiment         reviewsense.Label             `json:"sentiment"`
	Confidence        float64                       `json:"confidence"`
	Probabilities     map[reviewsense.Label]float64 `json:"probabilities"`
	Provenance        reviewsense.Provenance        `json:"provenance"`
	ModelType         string                        `json:"model_type"`
	Tokens            int                           `json:"tokens"`
	Coverage          float64                       `json:"coverage"`
	HasRatingMismatch *bool                         `json:"has_rating_mismatch,omitempty"`
	Indices           []int                         `json:"indices,omitempty"`
	Sentences         []sentenceOutput              `json:"sentences,omitempty"`
}

type sentenceOutput struct {
	Text       string                 `json:"text"`
	Sentiment  reviewsense.Label      `json:"sentiment"`
	Confidence float64                `json:"confidence"`
	Provenance reviewsense.Provenance `json:"provenance"`
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut     bool
		sentences   bool
		showIndices bool
		rating      int
	)

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Classify review text from arguments or stdin",
		Long:  "Classify review text. With no arguments, or a single \"-\", the text is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rating < 0 || rating > 5 {
				return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
			}
			text, err := readInput(cmd.InOrStdin(), args)
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

			var out analyzeOutput
			if sentences {
				breakdown, err := analyzer.AnalyzeSentences(cmd.Context(), text)
				if err != nil {
					return err
				}
				out = newAnalyzeOutput(breakdown.Overall)
				for _, sent := range breakdown.Sentences {
					out.Sentences = append(out.Sentences, sentenceOutput{
						Text:       sent.Text,
						Sentiment:  sent.Result.Label,
						Confidence: sent.Result.Confidence,
						Provenance: sent.Result.Provenance,
					})
				}
			} else {
				result, err := analyzer.Analyze(cmd.Context(), text)
				if err != nil {
					return err
				}
				out = newAnalyzeOutput(result)
			}

			if rating > 0 {
				mismatch := reviewsense.RatingMismatch(out.Sentiment, rating)
				out.HasRatingMismatch = &mismatch
			}
			if showIndices {
				if artifacts.Vocabulary == nil {
					return errors.New("show indices: vocabulary unavailable")
				}
				cfg, _ := ctx.ensureConfig()
				indices, consumed := reviewsense.EncodeSeq(reviewsense.NewTokenizer().Tokens(text), cfg.PadLength, artifacts.Vocabulary)
				out.Indices = indices[:consumed]
			}

			if jsonOut {
				return writeJSON(cmd, out)
			}
			printAnalysis(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&sentences, "sentences", false, "Also classify each sentence")
	cmd.Flags().BoolVar(&showIndices, "show-indices", false, "Print the encoded vocabulary indices (padding omitted)")
	cmd.Flags().IntVar(&rating, "rating", 0, "Star rating (1-5) to check for a mismatch")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func newAnalyzeOutput(r reviewsense.Result) analyzeOutput {
	return analyzeOutput{
		Sentiment:     r.Label,
		Confidence:    r.Confidence,
		Probabilities: r.Probabilities,
		Provenance:    r.Provenance,
		ModelType:     r.Provenance.ModelType(),
		Tokens:        r.Tokens,
		Coverage:      r.Coverage,
	}
}

func printAnalysis(w io.Writer, out analyzeOutput) {
	fmt.Fprintf(w, "Sentiment:   %s\n", out.Sentiment)
	fmt.Fprintf(w, "Confidence:  %.4f\n", out.Confidence)
	fmt.Fprintf(w, "Provenance:  %s (%s)\n", out.Provenance, out.ModelType)
	fmt.Fprintf(w, "Tokens:      %d\n", out.Tokens)
	if out.Provenance == reviewsense.FromModel {
		fmt.Fprintf(w, "Positive:    %.4f\n", out.Probabilities[reviewsense.Positive])
		fmt.Fprintf(w, "Negative:    %.4f\n", out.Probabilities[reviewsense.Negative])
		fmt.Fprintf(w, "Coverage:    %.1f%%\n", out.Coverage*100)
	}
	if out.HasRatingMismatch != nil {
		fmt.Fprintf(w, "Mismatch:    %s\n", yesNo(*out.HasRatingMismatch))
	}
	if out.Indices != nil {
		fmt.Fprintf(w, "Indices:     %v\n", out.Indices)
	}
	if len(out.Sentences) == 0 {
		return
	}

	rows := make([][]string, 0, len(out.Sentences))
	for _, sent := range out.Sentences {
		rows = append(rows, []string{
			sent.Text,
			string(sent.Sentiment),
			fmt.Sprintf("%.3f", sent.Confidence),
			string(sent.Provenance),
		})
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderTable(w, []string{"Sentence", "Sentiment", "Confidence", "Provenance"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
}
