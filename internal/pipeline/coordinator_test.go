package pipeline_test

import (
	"context"
	"sync"
	"testing"

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/internal/pipeline"
	"github.com/iiTzIsh/reviewlens/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFallbackCoordinator() *pipeline.Coordinator {
	return pipeline.NewCoordinator(
		analysis.NewClassifier(nil, ""),
		analysis.NewScorer(nil, ""),
		analysis.NewSummarizer(nil, ""),
	)
}

func TestProcessSingle_PositiveReview(t *testing.T) {
	c := newFallbackCoordinator()

	got := c.ProcessSingle(context.Background(), models.Review{
		ID:   "r1",
		Text: "An excellent stay, the staff were amazing",
	})

	assert.Equal(t, "r1", got.ReviewID)
	assert.Equal(t, "positive", got.Analysis.Sentiment)
	assert.InDelta(t, 5.0, got.Analysis.Score, 0.001)
	assert.Empty(t, got.Error)
	assert.False(t, got.ProcessedAt.IsZero())
}

func TestProcessSingle_OverallConfidenceIsMean(t *testing.T) {
	c := newFallbackCoordinator()

	// Keyword fallback: sentiment confidence 0.70, score confidence 0.50.
	got := c.ProcessSingle(context.Background(), models.Review{ID: "r1", Text: "excellent"})
	assert.InDelta(t, 0.70, got.Analysis.SentimentConfidence, 0.001)
	assert.InDelta(t, 0.50, got.Analysis.ScoreConfidence, 0.001)
	assert.InDelta(t, 0.60, got.Analysis.OverallConfidence, 0.001)
}

func TestProcessSingle_EmptyText(t *testing.T) {
	c := newFallbackCoordinator()

	got := c.ProcessSingle(context.Background(), models.Review{ID: "r1", Text: "   "})

	assert.Equal(t, "review text is empty", got.Error)
	assert.Equal(t, "neutral", got.Analysis.Sentiment)
	assert.InDelta(t, 3.0, got.Analysis.Score, 0.001)
	assert.Zero(t, got.Analysis.OverallConfidence)

	stats := c.Stats()
	assert.Equal(t, 1, stats.TotalProcessed)
	assert.Equal(t, 0, stats.SuccessfulWorkflows)
	assert.Equal(t, 1, stats.FailedWorkflows)
}

func TestProcessBatch_AssignsPositionalIDs(t *testing.T) {
	c := newFallbackCoordinator()

	got := c.ProcessBatch(context.Background(), []models.Review{
		{Text: "excellent"},
		{ID: "custom", Text: "terrible"},
		{Text: "fine"},
	}, false)

	require.Len(t, got.Results, 3)
	assert.Equal(t, "batch_review_0", got.Results[0].ReviewID)
	assert.Equal(t, "custom", got.Results[1].ReviewID)
	assert.Equal(t, "batch_review_2", got.Results[2].ReviewID)
	assert.Nil(t, got.Summary)
}

func TestProcessBatch_Statistics(t *testing.T) {
	c := newFallbackCoordinator()

	got := c.ProcessBatch(context.Background(), []models.Review{
		{Text: "excellent room"},
		{Text: "terrible service"},
		{Text: "we stayed two nights"},
		{Text: ""},
	}, false)

	stats := got.Statistics
	assert.Equal(t, 4, stats.TotalReviews)

	// The failed review counts as neutral in the distribution.
	total := 0
	for _, n := range stats.SentimentDistribution {
		total += n
	}
	assert.Equal(t, stats.TotalReviews, total)
	assert.Equal(t, 1, stats.SentimentDistribution["positive"])
	assert.Equal(t, 1, stats.SentimentDistribution["negative"])
	assert.Equal(t, 2, stats.SentimentDistribution["neutral"])

	// Score statistics exclude the failed review: 5.0, 2.0, 3.0.
	assert.InDelta(t, 3.33, stats.ScoreStatistics.Average, 0.001)
	assert.InDelta(t, 2.0, stats.ScoreStatistics.Minimum, 0.001)
	assert.InDelta(t, 5.0, stats.ScoreStatistics.Maximum, 0.001)
}

func TestProcessBatch_WithSummary(t *testing.T) {
	c := newFallbackCoordinator()

	got := c.ProcessBatch(context.Background(), []models.Review{
		{Text: "excellent room and staff"},
		{Text: "terrible breakfast"},
	}, true)

	require.NotNil(t, got.Summary)
	assert.Equal(t, 2, got.Summary.TotalReviews)
	assert.NotEmpty(t, got.Summary.SummaryText)
}

func TestProcessBatch_EmptyInput(t *testing.T) {
	c := newFallbackCoordinator()

	got := c.ProcessBatch(context.Background(), nil, false)
	assert.Empty(t, got.Results)
	assert.Zero(t, got.Statistics.TotalReviews)
}

func TestStatus_FallbackOnly(t *testing.T) {
	c := newFallbackCoordinator()

	got := c.Status()
	assert.Equal(t, "ready (fallback only)", got["classifier"])
	assert.Equal(t, "ready (fallback only)", got["scorer"])
	assert.Equal(t, "ready (fallback only)", got["summarizer"])
}

func TestStats_CountsAccumulate(t *testing.T) {
	c := newFallbackCoordinator()

	c.ProcessSingle(context.Background(), models.Review{ID: "a", Text: "good"})
	c.ProcessSingle(context.Background(), models.Review{ID: "b", Text: ""})
	c.ProcessSingle(context.Background(), models.Review{ID: "c", Text: "bad"})

	stats := c.Stats()
	assert.Equal(t, 3, stats.TotalProcessed)
	assert.Equal(t, 2, stats.SuccessfulWorkflows)
	assert.Equal(t, 1, stats.FailedWorkflows)
	require.NotNil(t, stats.LastRun)
	assert.False(t, stats.LastRun.IsZero())
}

func TestStats_ConcurrentUpdates(t *testing.T) {
	c := newFallbackCoordinator()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ProcessSingle(context.Background(), models.Review{ID: "x", Text: "good stay"})
		}()
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, 20, stats.TotalProcessed)
	assert.Equal(t, 20, stats.SuccessfulWorkflows)
}
