/*
Package reviewsense classifies the sentiment of product reviews.

The model path tokenizes a review, encodes the tokens against a vocabulary
into a fixed-length index sequence and runs a bidirectional LSTM over it. The
resulting logit is calibrated into a label and class probabilities.

When the trained artifacts did not load, or the network fails on a request,
the Analyzer answers with a lexical heuristic instead. Every Result records
which path produced it.

	artifacts := reviewsense.ArtifactsFromDisk("model", reviewsense.DefaultArtifactFiles(), logger)
	analyzer := reviewsense.NewAnalyzer(artifacts, reviewsense.DefaultAnalyzerConfig())
	result, err := analyzer.Analyze(ctx, "Great phone, terrible battery.")
*/
package reviewsense
