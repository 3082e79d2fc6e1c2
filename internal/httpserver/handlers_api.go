package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tsawler/reviewsense"
	apperrors "github.com/tsawler/reviewsense/internal/errors"
)

type analyzeRequest struct {
	ReviewText *string `json:"reviewText"`
	Rating     *int    `json:"rating"`
}

type sentimentResponse struct {
	Sentiment         reviewsense.Label             `json:"sentiment"`
	Confidence        float64                       `json:"confidence"`
	Probabilities     map[reviewsense.Label]float64 `json:"probabilities"`
	ModelType         string                        `json:"model_type"`
	Provenance        reviewsense.Provenance        `json:"provenance"`
	HasRatingMismatch *bool                         `json:"has_rating_mismatch,omitempty"`
	Tokens            int                           `json:"tokens"`
	Coverage          float64                       `json:"coverage"`
}

type sentenceResponse struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	sentimentResponse
}

type breakdownResponse struct {
	Overall   sentimentResponse  `json:"overall"`
	Sentences []sentenceResponse `json:"sentences"`
}

func newSentimentResponse(r reviewsense.Result) sentimentResponse {
	return sentimentResponse{
		Sentiment:     r.Label,
		Confidence:    r.Confidence,
		Probabilities: r.Probabilities,
		ModelType:     r.Provenance.ModelType(),
		Provenance:    r.Provenance,
		Tokens:        r.Tokens,
		Coverage:      r.Coverage,
	}
}

// bindReview decodes and validates the request body, returning the review
// text and the rating (0 when absent).
func bindReview(c echo.Context) (string, int, error) {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return "", 0, apperrors.ValidationError("request body must be a JSON object")
	}
	if req.ReviewText == nil {
		return "", 0, apperrors.ValidationError("reviewText is required")
	}
	if strings.TrimSpace(*req.ReviewText) == "" {
		return "", 0, apperrors.ValidationError("Review text cannot be empty")
	}
	rating := 0
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return "", 0, apperrors.ValidationError("rating must be between 1 and 5").
				WithContext("rating", *req.Rating)
		}
		rating = *req.Rating
	}
	return *req.ReviewText, rating, nil
}

func analysisError(err error) error {
	if errors.Is(err, reviewsense.ErrEmptyInput) {
		return apperrors.ValidationError("Review text cannot be empty")
	}
	return apperrors.InternalError("sentiment analysis failed", err)
}

func (s *Server) handleAnalyzeSentiment(c echo.Context) error {
	text, rating, err := bindReview(c)
	if err != nil {
		return err
	}

	result, err := s.analyzer.Analyze(c.Request().Context(), text)
	if err != nil {
		return analysisError(err)
	}

	resp := newSentimentResponse(result)
	if rating > 0 {
		mismatch := reviewsense.RatingMismatch(result.Label, rating)
		resp.HasRatingMismatch = &mismatch
	}

	s.logger.InfoContext(c.Request().Context(), "Analysis complete",
		"sentiment", result.Label,
		"confidence", result.Confidence,
		"provenance", result.Provenance,
	)
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeSentences(c echo.Context) error {
	text, rating, err := bindReview(c)
	if err != nil {
		return err
	}

	breakdown, err := s.analyzer.AnalyzeSentences(c.Request().Context(), text)
	if err != nil {
		return analysisError(err)
	}

	resp := breakdownResponse{
		Overall:   newSentimentResponse(breakdown.Overall),
		Sentences: make([]sentenceResponse, 0, len(breakdown.Sentences)),
	}
	if rating > 0 {
		mismatch := reviewsense.RatingMismatch(breakdown.Overall.Label, rating)
		resp.Overall.HasRatingMismatch = &mismatch
	}
	for _, sent := range breakdown.Sentences {
		resp.Sentences = append(resp.Sentences, sentenceResponse{
			Text:              sent.Text,
			Start:             sent.Start,
			End:               sent.End,
			sentimentResponse: newSentimentResponse(sent.Result),
		})
	}

	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
