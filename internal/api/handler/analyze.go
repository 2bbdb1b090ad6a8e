// Package handler contains the HTTP handlers for the ReviewLens API.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/iiTzIsh/reviewlens/internal/api/response"
	"github.com/iiTzIsh/reviewlens/internal/pipeline"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

const maxBatchSize = 100

// AnalysisSaver persists analysis results. Persistence is best effort and
// never fails a request.
type AnalysisSaver interface {
	SaveAnalysis(ctx context.Context, analysis *models.StoredAnalysis) error
}

// NewAnalyzeReviewHandler returns an http.HandlerFunc for POST /api/v1/reviews/analyze.
func NewAnalyzeReviewHandler(coord *pipeline.Coordinator, saver AnalysisSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ReviewID string `json:"review_id"`
			Text     string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.ReviewID == "" {
			req.ReviewID = uuid.NewString()
		}

		result := coord.ProcessSingle(r.Context(), models.Review{ID: req.ReviewID, Text: req.Text})
		persistResult(saver, result)

		response.JSON(w, result)
	}
}

// NewAnalyzeBatchHandler returns an http.HandlerFunc for POST /api/v1/reviews/batch.
func NewAnalyzeBatchHandler(coord *pipeline.Coordinator, saver AnalysisSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Reviews   []models.Review `json:"reviews"`
			Summarize bool            `json:"summarize"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if len(req.Reviews) == 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "reviews must be a non-empty list", nil)
			return
		}
		if len(req.Reviews) > maxBatchSize {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "too many reviews in one batch", map[string]any{
				"max_batch_size": maxBatchSize,
			})
			return
		}

		batch := coord.ProcessBatch(r.Context(), req.Reviews, req.Summarize)
		for _, result := range batch.Results {
			persistResult(saver, result)
		}

		response.JSON(w, batch)
	}
}

func persistResult(saver AnalysisSaver, result models.ReviewResult) {
	if saver == nil || result.Error != "" {
		return
	}
	stored := &models.StoredAnalysis{
		ID:                  uuid.New(),
		ReviewID:            result.ReviewID,
		ReviewText:          result.ReviewText,
		Sentiment:           result.Analysis.Sentiment,
		SentimentConfidence: result.Analysis.SentimentConfidence,
		Score:               result.Analysis.Score,
		ScoreConfidence:     result.Analysis.ScoreConfidence,
		OverallConfidence:   result.Analysis.OverallConfidence,
		CreatedAt:           time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := saver.SaveAnalysis(ctx, stored); err != nil {
		slog.Warn("failed to persist analysis result", "review_id", result.ReviewID, "error", err)
	}
}
