package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"slices"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/tsawler/reviewsense"
)

// benchCorpus is a fixed set of reviews covering both labels, neutral text,
// out-of-vocabulary words and input longer than the pad length.
var benchCorpus = []string{
	"This is a great product",
	"This is a terrible product",
	"This is a product",
	"Absolutely wonderful phone, the battery lasts all day and the screen is excellent.",
	"Worst purchase ever. It broke after two days and support was useless.",
	"The zyzzyva flux capacitor hums quietly.",
	"Good value but poor packaging; arrived late but works as described.",
	"I love it! I love it! I love it! Best thing I've bought this year, would buy again without a second thought.",
}

type benchReport struct {
	Iterations    int                    `json:"iterations"`
	Requests      int                    `json:"requests"`
	Provenance    reviewsense.Provenance `json:"provenance"`
	Mean          time.Duration          `json:"mean_ns"`
	P50           time.Duration          `json:"p50_ns"`
	P95           time.Duration          `json:"p95_ns"`
	Max           time.Duration          `json:"max_ns"`
	Digest        string                 `json:"digest"`
	Deterministic bool                   `json:"deterministic"`
}

func newBenchCommand(ctx *commandContext) *cobra.Command {
	var (
		iterations int
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure analysis latency and check results are deterministic",
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 {
				return fmt.Errorf("iterations must be positive, got %d", iterations)
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

			report, err := runBench(cmd.Context(), ctx.clock, analyzer, iterations)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, report)
			}

			w := cmd.OutOrStdout()
			rows := [][]string{
				{"Iterations", strconv.Itoa(report.Iterations)},
				{"Requests", strconv.Itoa(report.Requests)},
				{"Path", string(report.Provenance)},
				{"Mean", report.Mean.String()},
				{"p50", report.P50.String()},
				{"p95", report.P95.String()},
				{"Max", report.Max.String()},
				{"Digest", report.Digest[:16]},
				{"Deterministic", yesNo(report.Deterministic)},
			}
			fmt.Fprintln(w, renderTable(w, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 50, "Passes over the corpus")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// runBench analyzes the corpus iterations times. Each pass is hashed; the run
// is deterministic when every pass hashes the same.
func runBench(ctx context.Context, clock clockwork.Clock, analyzer *reviewsense.Analyzer, iterations int) (benchReport, error) {
	report := benchReport{Iterations: iterations, Deterministic: true}
	latencies := make([]time.Duration, 0, iterations*len(benchCorpus))
	var total time.Duration

	for i := range iterations {
		h := sha256.New()
		for _, text := range benchCorpus {
			start := clock.Now()
			result, err := analyzer.Analyze(ctx, text)
			if err != nil {
				return benchReport{}, fmt.Errorf("analyze %q: %w", text, err)
			}
			elapsed := clock.Since(start)
			latencies = append(latencies, elapsed)
			total += elapsed
			hashResult(h, result)
			if result.Provenance == reviewsense.FromModel || report.Provenance == "" {
				report.Provenance = result.Provenance
			}
		}

		digest := hex.EncodeToString(h.Sum(nil))
		if i == 0 {
			report.Digest = digest
		} else if digest != report.Digest {
			report.Deterministic = false
		}
		if err := ctx.Err(); err != nil {
			return benchReport{}, err
		}
	}

	slices.Sort(latencies)
	report.Requests = len(latencies)
	report.Mean = total / time.Duration(len(latencies))
	report.P50 = percentile(latencies, 0.50)
	report.P95 = percentile(latencies, 0.95)
	report.Max = latencies[len(latencies)-1]
	return report, nil
}

func hashResult(h hash.Hash, r reviewsense.Result) {
	fmt.Fprintf(h, "%s|%s|%s|%d|%s;",
		r.Label,
		r.Provenance,
		strconv.FormatFloat(r.Confidence, 'g', -1, 64),
		r.Tokens,
		strconv.FormatFloat(r.Coverage, 'g', -1, 64),
	)
}

// percentile returns the nearest-rank percentile of sorted.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(p*float64(len(sorted))+0.5) - 1
	rank = max(0, min(rank, len(sorted)-1))
	return sorted[rank]
}
