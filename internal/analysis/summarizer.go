package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/iiTzIsh/reviewlens/internal/hfapi"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

const (
	summaryCharBudget  = 400
	summarySentences   = 3
	remoteSummaryInput = 4000
)

// domainKeywords drive both extractive sentence scoring and key-theme
// extraction.
var domainKeywords = []string{
	"room", "service", "staff", "location", "breakfast", "wifi",
	"clean", "dirty", "comfortable", "noisy", "quiet", "helpful",
	"rude", "friendly", "price", "value", "amenities", "pool",
	"gym", "restaurant", "bar", "view", "bathroom", "bed",
	"reception", "check-in", "check-out", "parking",
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Summarizer produces prose summaries, insights, and recommendations over an
// annotated review collection. A configured summarization backend supplies
// the prose; the rule-based extractive method is the fallback.
type Summarizer struct {
	hf    hfapi.Client
	model string
}

// NewSummarizer creates a Summarizer. A nil client means extractive-only
// operation.
func NewSummarizer(hf hfapi.Client, model string) *Summarizer {
	return &Summarizer{hf: hf, model: model}
}

// RemoteEnabled reports whether an abstractive backend is configured.
func (s *Summarizer) RemoteEnabled() bool { return s.hf != nil }

// Summarize builds the collection summary for reviews. Reviews without a
// numeric score count toward the total but are excluded from score
// statistics. Summarize never fails.
func (s *Summarizer) Summarize(ctx context.Context, reviews []models.AnnotatedReview) models.CollectionSummary {
	if len(reviews) == 0 {
		return models.CollectionSummary{
			SummaryText:           "No review content available for summarization",
			TotalReviews:          0,
			SentimentDistribution: map[string]int{},
			KeyThemes:             []string{},
			KeyInsights:           []string{},
			Recommendations:       []string{"No reviews available for analysis"},
		}
	}

	dist := map[string]int{
		models.SentimentPositive: 0,
		models.SentimentNegative: 0,
		models.SentimentNeutral:  0,
	}
	var scores []float64
	var texts []string
	for _, r := range reviews {
		dist[orNeutral(r.Sentiment)]++
		if r.Score != nil {
			scores = append(scores, *r.Score)
		}
		texts = append(texts, r.Text)
	}

	avg, min, max := scoreStats(scores)

	return models.CollectionSummary{
		SummaryText:           s.summaryText(ctx, texts),
		TotalReviews:          len(reviews),
		SentimentDistribution: dist,
		AverageScore:          avg,
		ScoreRange:            models.ScoreRange{Min: min, Max: max},
		KeyThemes:             keyThemes(texts),
		KeyInsights:           keyInsights(dist, len(reviews), avg),
		Recommendations:       recommendations(dist, len(reviews), avg),
	}
}

func (s *Summarizer) summaryText(ctx context.Context, texts []string) string {
	joined := strings.Join(texts, " ")

	if s.hf != nil {
		input := joined
		if len(input) > remoteSummaryInput {
			input = input[:remoteSummaryInput]
		}
		summary, err := s.hf.Summarize(ctx, s.model, input, hfapi.SummarizeParams{
			MaxLength: 150,
			MinLength: 50,
		})
		if err != nil {
			slog.Warn("summarization backend failed, using extractive fallback", "error", err)
		} else {
			return summary
		}
	}

	return extractiveSummary(joined)
}

// extractiveSummary picks the most keyword-dense sentences, keeping their
// original order, within a fixed character budget.
func extractiveSummary(text string) string {
	type scored struct {
		index int
		hits  int
		text  string
	}

	var sentences []scored
	for i, raw := range sentenceSplit.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		hits := 0
		for _, kw := range domainKeywords {
			hits += strings.Count(lower, kw)
		}
		sentences = append(sentences, scored{index: i, hits: hits, text: sentence})
	}
	if len(sentences) == 0 {
		return "No review content available for summarization"
	}

	sort.SliceStable(sentences, func(i, j int) bool {
		return sentences[i].hits > sentences[j].hits
	})
	top := sentences
	if len(top) > summarySentences {
		top = top[:summarySentences]
	}
	sort.Slice(top, func(i, j int) bool { return top[i].index < top[j].index })

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = s.text
	}
	summary := strings.Join(parts, ". ") + "."
	if len(summary) > summaryCharBudget {
		summary = summary[:summaryCharBudget-3] + "..."
	}
	return summary
}

// keyThemes returns the most frequent domain keywords, most common first.
func keyThemes(texts []string) []string {
	all := strings.ToLower(strings.Join(texts, " "))

	type count struct {
		word string
		n    int
	}
	var counts []count
	for _, kw := range domainKeywords {
		if n := strings.Count(all, kw); n > 0 {
			counts = append(counts, count{word: kw, n: n})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].n > counts[j].n })

	themes := make([]string, 0, 5)
	for _, c := range counts {
		themes = append(themes, c.word)
		if len(themes) == 5 {
			break
		}
	}
	return themes
}

func keyInsights(dist map[string]int, total int, avg float64) []string {
	pct := func(n int) float64 {
		return math.Round(float64(n) / float64(total) * 100)
	}

	insights := []string{
		fmt.Sprintf("%.0f%% of reviews are positive, %.0f%% negative, %.0f%% neutral",
			pct(dist[models.SentimentPositive]),
			pct(dist[models.SentimentNegative]),
			pct(dist[models.SentimentNeutral])),
	}

	switch {
	case avg >= 4.0:
		insights = append(insights, fmt.Sprintf("Overall guest satisfaction is high (average score %.2f)", avg))
	case avg <= 2.0:
		insights = append(insights, fmt.Sprintf("Guest satisfaction needs immediate improvement (average score %.2f)", avg))
	default:
		insights = append(insights, fmt.Sprintf("Guest satisfaction is moderate (average score %.2f)", avg))
	}

	return insights
}

func recommendations(dist map[string]int, total int, avg float64) []string {
	var recs []string

	switch {
	case avg < 2.5:
		recs = append(recs, "Implement an urgent service improvement plan")
	case avg < 3.5:
		recs = append(recs, "Address recurring guest complaints")
	}
	if avg >= 4.5 {
		recs = append(recs, "Maintain current service standards")
	}

	if float64(dist[models.SentimentNegative])/float64(total) > 0.3 {
		recs = append(recs, "Prioritize responses to negative reviews")
	}

	recs = append(recs,
		"Monitor review trends over time",
		"Respond to guest reviews promptly",
	)
	return recs
}

func scoreStats(scores []float64) (avg, min, max float64) {
	if len(scores) == 0 {
		return 0, 0, 0
	}
	min, max = scores[0], scores[0]
	sum := 0.0
	for _, s := range scores {
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return round2(sum / float64(len(scores))), min, max
}
