package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/internal/api/response"
	"github.com/iiTzIsh/reviewlens/internal/cache"
)

const classificationTTL = time.Hour

type textRequest struct {
	Text string `json:"text"`
}

func decodeTextRequest(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return req, false
	}
	return req, true
}

// NewClassifyHandler returns an http.HandlerFunc for POST /api/v1/classify.
// Classification results are cached by text hash.
func NewClassifyHandler(classifier *analysis.Classifier, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTextRequest(w, r)
		if !ok {
			return
		}

		key := cache.ClassificationKey(textHash(req.Text))
		if c != nil {
			if raw, found, err := c.Get(r.Context(), key); err == nil && found {
				var cached analysis.Classification
				if json.Unmarshal(raw, &cached) == nil {
					response.JSON(w, cached)
					return
				}
			}
		}

		result := classifier.Classify(r.Context(), req.Text)

		if c != nil {
			if raw, err := json.Marshal(result); err == nil {
				if err := c.Set(r.Context(), key, raw, classificationTTL); err != nil {
					slog.Warn("failed to cache classification", "error", err)
				}
			}
		}

		response.JSON(w, result)
	}
}

// NewScoreHandler returns an http.HandlerFunc for POST /api/v1/score.
// Score results are cached by a hash of text and sentiment.
func NewScoreHandler(scorer *analysis.Scorer, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text      string `json:"text"`
			Sentiment string `json:"sentiment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		key := cache.ScoreKey(textHash(req.Text + "|" + req.Sentiment))
		if c != nil {
			if raw, found, err := c.Get(r.Context(), key); err == nil && found {
				var cached analysis.ScoreResult
				if json.Unmarshal(raw, &cached) == nil {
					response.JSON(w, cached)
					return
				}
			}
		}

		result := scorer.Score(r.Context(), req.Text, req.Sentiment)

		if c != nil {
			if raw, err := json.Marshal(result); err == nil {
				if err := c.Set(r.Context(), key, raw, classificationTTL); err != nil {
					slog.Warn("failed to cache score", "error", err)
				}
			}
		}

		response.JSON(w, result)
	}
}

// NewTitleHandler returns an http.HandlerFunc for POST /api/v1/title.
func NewTitleHandler(titler *analysis.TitleGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text      string `json:"text"`
			Sentiment string `json:"sentiment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		response.JSON(w, titler.Generate(req.Text, req.Sentiment))
	}
}

func textHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
