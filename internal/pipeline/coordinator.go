// Package pipeline orchestrates the review analysis components into single
// and batch workflows and tracks workflow statistics.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// Coordinator runs reviews through classification and scoring, optionally
// summarizing batches, and keeps running counters. Safe for concurrent use.
type Coordinator struct {
	classifier *analysis.Classifier
	scorer     *analysis.Scorer
	summarizer *analysis.Summarizer

	mu    sync.Mutex
	stats models.WorkflowStats
}

// NewCoordinator wires the analysis components into a pipeline.
func NewCoordinator(classifier *analysis.Classifier, scorer *analysis.Scorer, summarizer *analysis.Summarizer) *Coordinator {
	return &Coordinator{
		classifier: classifier,
		scorer:     scorer,
		summarizer: summarizer,
	}
}

// ProcessSingle analyzes one review. A review with no text is recorded as a
// failed workflow and yields the neutral default result rather than an
// error.
func (c *Coordinator) ProcessSingle(ctx context.Context, review models.Review) models.ReviewResult {
	if strings.TrimSpace(review.Text) == "" {
		slog.Warn("review has no text, skipping analysis", "review_id", review.ID)
		c.recordOutcome(false)
		return c.defaultResult(review, "review text is empty")
	}

	classification := c.classifier.Classify(ctx, review.Text)
	scoring := c.scorer.Score(ctx, review.Text, classification.Sentiment)

	result := models.ReviewResult{
		ReviewID:   review.ID,
		ReviewText: review.Text,
		Analysis: models.Analysis{
			Sentiment:           classification.Sentiment,
			SentimentConfidence: classification.Confidence,
			Score:               scoring.Score,
			ScoreConfidence:     scoring.Confidence,
			OverallConfidence:   overallConfidence(classification.Confidence, scoring.Confidence),
		},
		ProcessedAt: time.Now().UTC(),
	}
	c.recordOutcome(true)
	return result
}

// ProcessBatch analyzes each review in order. Reviews without an ID are
// assigned a positional one. When summarize is set, a collection summary is
// built over the analyzed batch.
func (c *Coordinator) ProcessBatch(ctx context.Context, reviews []models.Review, summarize bool) models.BatchResult {
	results := make([]models.ReviewResult, 0, len(reviews))
	for i, review := range reviews {
		if review.ID == "" {
			review.ID = fmt.Sprintf("batch_review_%d", i)
		}
		results = append(results, c.ProcessSingle(ctx, review))
	}

	batch := models.BatchResult{
		Results:     results,
		Statistics:  batchStatistics(results),
		ProcessedAt: time.Now().UTC(),
	}

	if summarize {
		annotated := make([]models.AnnotatedReview, len(results))
		for i, r := range results {
			score := r.Analysis.Score
			annotated[i] = models.AnnotatedReview{
				Text:      r.ReviewText,
				Sentiment: r.Analysis.Sentiment,
				Score:     &score,
			}
		}
		summary := c.summarizer.Summarize(ctx, annotated)
		batch.Summary = &summary
	}

	return batch
}

// Status reports readiness of each pipeline component.
func (c *Coordinator) Status() map[string]string {
	return map[string]string{
		"classifier": readiness(c.classifier.RemoteEnabled()),
		"scorer":     readiness(c.scorer.RemoteEnabled()),
		"summarizer": readiness(c.summarizer.RemoteEnabled()),
	}
}

// Stats returns a snapshot of the workflow counters.
func (c *Coordinator) Stats() models.WorkflowStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Coordinator) recordOutcome(ok bool) {
	now := time.Now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.TotalProcessed++
	if ok {
		c.stats.SuccessfulWorkflows++
	} else {
		c.stats.FailedWorkflows++
	}
	c.stats.LastRun = &now
}

func (c *Coordinator) defaultResult(review models.Review, reason string) models.ReviewResult {
	return models.ReviewResult{
		ReviewID:   review.ID,
		ReviewText: review.Text,
		Analysis: models.Analysis{
			Sentiment:           models.SentimentNeutral,
			SentimentConfidence: 0,
			Score:               3.0,
			ScoreConfidence:     0,
			OverallConfidence:   0,
		},
		ProcessedAt: time.Now().UTC(),
		Error:       reason,
	}
}

func batchStatistics(results []models.ReviewResult) models.BatchStatistics {
	dist := map[string]int{
		models.SentimentPositive: 0,
		models.SentimentNegative: 0,
		models.SentimentNeutral:  0,
	}
	var scores []float64
	for _, r := range results {
		dist[r.Analysis.Sentiment]++
		if r.Error == "" {
			scores = append(scores, r.Analysis.Score)
		}
	}

	stats := models.BatchStatistics{
		TotalReviews:          len(results),
		SentimentDistribution: dist,
	}
	if len(scores) > 0 {
		min, max, sum := scores[0], scores[0], 0.0
		for _, s := range scores {
			sum += s
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
		}
		stats.ScoreStatistics = models.ScoreStatistics{
			Average: roundTo2(sum / float64(len(scores))),
			Minimum: min,
			Maximum: max,
		}
	}
	return stats
}

func overallConfidence(a, b float64) float64 {
	return roundTo2((a + b) / 2)
}

func readiness(remote bool) string {
	if remote {
		return "ready (remote)"
	}
	return "ready (fallback only)"
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
