package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iiTzIsh/reviewlens/internal/analysis"
	"github.com/iiTzIsh/reviewlens/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGen is a scripted genai.Client for component tests.
type fakeGen struct {
	out        string
	err        error
	lastPrompt string
}

func (f *fakeGen) GenerateText(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.out, f.err
}

func sampleReviews() []models.AnnotatedReview {
	return []models.AnnotatedReview{
		{Text: "Great staff and a clean room", Sentiment: "positive"},
		{Text: "Noisy street outside", Sentiment: "negative"},
	}
}

func TestGenerateTags_NilClientUsesFallback(t *testing.T) {
	tagger := analysis.NewTagger(nil)

	got := tagger.GenerateTags(context.Background(), sampleReviews())
	assert.Equal(t, []string{"excellent", "clean", "friendly", "comfortable", "convenient"}, got.PositiveKeywords)
	assert.Equal(t, []string{"dirty", "noise", "rude", "expensive", "disappointing"}, got.NegativeKeywords)
	assert.Len(t, got.TopicMetrics, 3)
	assert.Equal(t, 75, got.TopicMetrics["service"].Percentage)
	assert.Equal(t, 70, got.TopicMetrics["cleanliness"].Percentage)
	assert.Equal(t, 80, got.TopicMetrics["location"].Percentage)
	assert.Len(t, got.MainIssues, 3)
	assert.Len(t, got.EmergingTopics, 3)
}

func TestGenerateTags_EmptyInputUsesFallback(t *testing.T) {
	tagger := analysis.NewTagger(&fakeGen{out: "{}"})

	got := tagger.GenerateTags(context.Background(), nil)
	assert.Equal(t, 75, got.TopicMetrics["service"].Percentage)
}

func TestGenerateTags_RemoteJSON(t *testing.T) {
	gen := &fakeGen{out: `{
		"positive_keywords": ["view"],
		"negative_keywords": ["noise"],
		"topic_metrics": {"location": {"percentage": 90, "keywords": ["harbor"], "description": "Waterfront"}},
		"main_issues": ["street noise"],
		"emerging_topics": ["late checkout"]
	}`}
	tagger := analysis.NewTagger(gen)

	got := tagger.GenerateTags(context.Background(), sampleReviews())
	require.Len(t, got.PositiveKeywords, 1)
	assert.Equal(t, "view", got.PositiveKeywords[0])
	assert.Equal(t, 90, got.TopicMetrics["location"].Percentage)
	assert.Contains(t, gen.lastPrompt, "Great staff and a clean room")
}

func TestGenerateTags_StripsCodeFences(t *testing.T) {
	gen := &fakeGen{out: "```json\n{\"positive_keywords\": [\"spa\"]}\n```"}
	tagger := analysis.NewTagger(gen)

	got := tagger.GenerateTags(context.Background(), sampleReviews())
	assert.Equal(t, []string{"spa"}, got.PositiveKeywords)
}

func TestGenerateTags_InvalidJSONUsesFallback(t *testing.T) {
	gen := &fakeGen{out: "the reviews are mostly positive"}
	tagger := analysis.NewTagger(gen)

	got := tagger.GenerateTags(context.Background(), sampleReviews())
	assert.Equal(t, 80, got.TopicMetrics["location"].Percentage)
}

func TestGenerateTags_BackendErrorUsesFallback(t *testing.T) {
	gen := &fakeGen{err: errors.New("quota exceeded")}
	tagger := analysis.NewTagger(gen)

	got := tagger.GenerateTags(context.Background(), sampleReviews())
	assert.Len(t, got.MainIssues, 3)
}
