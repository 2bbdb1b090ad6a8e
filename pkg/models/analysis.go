package models

import "time"

// Analysis is the per-review verdict produced by the classify → score flow.
// Score is always within [1.0, 5.0]; confidences are within [0, 1].
type Analysis struct {
	Sentiment           string  `json:"sentiment"`
	SentimentConfidence float64 `json:"sentiment_confidence"`
	Score               float64 `json:"score"`
	ScoreConfidence     float64 `json:"score_confidence"`
	OverallConfidence   float64 `json:"overall_confidence"`
}

// ReviewResult wraps one review's Analysis with processing metadata.
// Error is set only when the workflow degraded to the neutral default;
// the result itself is always structurally complete.
type ReviewResult struct {
	ReviewID    string    `json:"review_id,omitempty"`
	ReviewText  string    `json:"review_text"`
	Analysis    Analysis  `json:"analysis"`
	ProcessedAt time.Time `json:"processed_at"`
	Error       string    `json:"error,omitempty"`
}

// ScoreStatistics aggregates numeric scores across a batch.
type ScoreStatistics struct {
	Average float64 `json:"average"`
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
}

// BatchStatistics is the aggregate rollup of a batch run. The sentiment
// distribution always sums to TotalReviews.
type BatchStatistics struct {
	TotalReviews          int             `json:"total_reviews"`
	SentimentDistribution map[string]int  `json:"sentiment_distribution"`
	ScoreStatistics       ScoreStatistics `json:"score_statistics"`
}

// BatchResult is the outcome of processing a batch of reviews: per-review
// results in input order, batch statistics, and an optional collection summary.
type BatchResult struct {
	Results     []ReviewResult     `json:"individual_results"`
	Statistics  BatchStatistics    `json:"batch_statistics"`
	Summary     *CollectionSummary `json:"collection_summary,omitempty"`
	ProcessedAt time.Time          `json:"processed_at"`
}

// ScoreRange is the min/max spread of scores in a collection.
type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CollectionSummary is the summarizer's output over a review collection.
type CollectionSummary struct {
	SummaryText           string         `json:"summary_text"`
	TotalReviews          int            `json:"total_reviews"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	AverageScore          float64        `json:"average_score"`
	ScoreRange            ScoreRange     `json:"score_range"`
	KeyThemes             []string       `json:"key_themes"`
	KeyInsights           []string       `json:"key_insights"`
	Recommendations       []string       `json:"recommendations"`
}

// WorkflowStats tracks cumulative pipeline volume and outcomes. Initialized
// at coordinator construction and never reset for the coordinator's lifetime.
type WorkflowStats struct {
	TotalProcessed      int        `json:"total_processed"`
	SuccessfulWorkflows int        `json:"successful_workflows"`
	FailedWorkflows     int        `json:"failed_workflows"`
	LastRun             *time.Time `json:"last_run,omitempty"`
}
