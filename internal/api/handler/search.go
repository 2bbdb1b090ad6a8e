package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/internal/api/response"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// NewSearchHandler returns an http.HandlerFunc for POST /api/v1/search.
func NewSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Reviews  []models.AnnotatedReview `json:"reviews"`
			Criteria analysis.SearchCriteria  `json:"criteria"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Criteria.MinScore != nil && req.Criteria.MaxScore != nil &&
			*req.Criteria.MinScore > *req.Criteria.MaxScore {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "min_score must not exceed max_score", nil)
			return
		}

		response.JSON(w, analysis.Search(req.Reviews, req.Criteria))
	}
}
