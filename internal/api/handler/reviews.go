package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/iiTzIsh/reviewlens/internal/api/response"
	"github.com/iiTzIsh/reviewlens/internal/store"
)

// NewGetAnalysisHandler returns an http.HandlerFunc for GET /api/v1/reviews/{analysisID}.
func NewGetAnalysisHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "analysisID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "analysisID must be a valid UUID", nil)
			return
		}

		analysis, err := s.GetAnalysis(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Analysis not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load analysis", nil)
			return
		}

		response.JSON(w, analysis)
	}
}

// NewListAnalysesHandler returns an http.HandlerFunc for GET /api/v1/reviews/recent.
func NewListAnalysesHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := store.AnalysisFilter{
			Sentiment: q.Get("sentiment"),
			Page:      queryInt(q.Get("page"), 1),
			Limit:     queryInt(q.Get("limit"), 20),
		}
		if v := q.Get("min_score"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "min_score must be a number", nil)
				return
			}
			filter.MinScore = f
		}
		if v := q.Get("max_score"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "max_score must be a number", nil)
				return
			}
			filter.MaxScore = f
		}

		analyses, total, err := s.ListRecentAnalyses(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list analyses", nil)
			return
		}

		response.Collection(w, analyses, response.PaginationMeta{
			Page:    filter.Page,
			Limit:   filter.Limit,
			Total:   total,
			HasNext: filter.Page*filter.Limit < total,
		})
	}
}

func queryInt(v string, defaultVal int) int {
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return defaultVal
	}
	return i
}
