package models

import (
	"time"

	"github.com/google/uuid"
)

// StoredAnalysis is a persisted per-review analysis row. ReviewID carries the
// caller-supplied identifier, which may be empty for ad-hoc submissions.
type StoredAnalysis struct {
	ID                  uuid.UUID `db:"id"                   json:"id"`
	ReviewID            string    `db:"review_id"            json:"review_id,omitempty"`
	ReviewText          string    `db:"review_text"          json:"review_text"`
	Sentiment           string    `db:"sentiment"            json:"sentiment"`
	SentimentConfidence float64   `db:"sentiment_confidence" json:"sentiment_confidence"`
	Score               float64   `db:"score"                json:"score"`
	ScoreConfidence     float64   `db:"score_confidence"     json:"score_confidence"`
	OverallConfidence   float64   `db:"overall_confidence"   json:"overall_confidence"`
	Title               *string   `db:"title"                json:"title,omitempty"`
	CreatedAt           time.Time `db:"created_at"           json:"created_at"`
}
