package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/internal/api/response"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

type reviewsRequest struct {
	Reviews []models.AnnotatedReview `json:"reviews"`
}

func decodeReviewsRequest(w http.ResponseWriter, r *http.Request) (reviewsRequest, bool) {
	var req reviewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return req, false
	}
	return req, true
}

// NewTagsHandler returns an http.HandlerFunc for POST /api/v1/tags.
func NewTagsHandler(tagger *analysis.Tagger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeReviewsRequest(w, r)
		if !ok {
			return
		}

		response.JSON(w, tagger.GenerateTags(r.Context(), req.Reviews))
	}
}

// NewSummarizeHandler returns an http.HandlerFunc for POST /api/v1/summarize.
func NewSummarizeHandler(summarizer *analysis.Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeReviewsRequest(w, r)
		if !ok {
			return
		}

		response.JSON(w, summarizer.Summarize(r.Context(), req.Reviews))
	}
}
