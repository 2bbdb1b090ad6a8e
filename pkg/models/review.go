// Package models contains shared data models used across the ReviewLens codebase.
package models

// Canonical sentiment labels. Every classifier output maps onto one of these.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Review is the pipeline input unit: free-form guest review text plus
// optional metadata. The pipeline never mutates a Review; it produces a
// derived ReviewResult instead.
type Review struct {
	ID       string   `json:"id,omitempty"`
	Text     string   `json:"text"`
	Rating   *float64 `json:"rating,omitempty"` // prior rating supplied by the guest, if any
	Reviewer string   `json:"reviewer,omitempty"`
}

// AnnotatedReview is the reduced per-review view consumed by the summarizer,
// tagger, and search engine: raw text plus the analysis outputs that earlier
// pipeline stages attached. Score is nil for reviews that were never scored.
type AnnotatedReview struct {
	Text      string   `json:"text"`
	Sentiment string   `json:"sentiment,omitempty"`
	Score     *float64 `json:"score,omitempty"`
}
