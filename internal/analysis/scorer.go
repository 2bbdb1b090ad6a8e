package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iiTzIsh/reviewlens/internal/hfapi"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// ScoreResult is the outcome of one score generation. Score is always within
// [1.0, 5.0] at one decimal place.
type ScoreResult struct {
	Score      float64 `json:"score"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	RawResult  string  `json:"raw_result,omitempty"`
}

// scoreTiers are checked in order; the first tier with a matching word wins.
// Positive tiers come first, then the strongest negative tier, so that a
// word like "terrible" lands in the 2.0 tier rather than the 1.0 tier.
var scoreTiers = []struct {
	score float64
	words []string
}{
	{5.0, []string{"excellent", "amazing", "perfect", "outstanding", "exceptional"}},
	{4.0, []string{"wonderful", "great", "fantastic", "superb", "good"}},
	{1.0, []string{"horrible", "awful", "disgusting", "worst"}},
	{2.0, []string{"terrible", "bad", "poor", "dirty", "rude"}},
}

// Scorer maps review text to a numeric quality score on the 1-5 scale.
type Scorer struct {
	hf    hfapi.Client
	model string
}

// NewScorer creates a Scorer. A nil client means fallback-only operation.
func NewScorer(hf hfapi.Client, model string) *Scorer {
	return &Scorer{hf: hf, model: model}
}

// RemoteEnabled reports whether a remote scoring backend is configured.
func (s *Scorer) RemoteEnabled() bool { return s.hf != nil }

// Score rates text on [1.0, 5.0]. The optional sentiment nudges the keyword
// fallback when it disagrees with the keyword-derived score; an empty
// sentiment means no adjustment. Score never returns an error.
func (s *Scorer) Score(ctx context.Context, text, sentiment string) ScoreResult {
	if err := ctx.Err(); err != nil {
		return ScoreResult{
			Score:     3.0,
			Sentiment: orNeutral(sentiment),
			RawResult: err.Error(),
		}
	}

	if s.hf != nil {
		scores, err := s.hf.TextClassification(ctx, s.model, text)
		if err != nil {
			slog.Warn("scoring backend failed, using keyword fallback", "error", err)
		} else if r, ok := expectedScore(scores); ok {
			return ScoreResult{
				Score:      round1(clamp(r.value, 1.0, 5.0)),
				Sentiment:  orNeutral(sentiment),
				Confidence: round2(r.topProbability),
				RawResult:  fmt.Sprintf("backend expectation over %d classes", r.classes),
			}
		}
	}

	return s.keywordScore(text, sentiment)
}

type expectation struct {
	value          float64
	topProbability float64
	classes        int
}

// expectedScore computes Σ(probability × star value) across recognized
// classes. Labels are mapped via LABEL_0..LABEL_4 or a star digit (1-5).
func expectedScore(scores []hfapi.ClassScore) (expectation, bool) {
	var e expectation
	for _, cs := range scores {
		star, ok := starValue(cs.Label)
		if !ok {
			continue
		}
		e.value += cs.Score * star
		e.classes++
		if cs.Score > e.topProbability {
			e.topProbability = cs.Score
		}
	}
	return e, e.classes > 0
}

func starValue(label string) (float64, bool) {
	switch strings.ToUpper(label) {
	case "LABEL_0":
		return 1.0, true
	case "LABEL_1":
		return 2.0, true
	case "LABEL_2":
		return 3.0, true
	case "LABEL_3":
		return 4.0, true
	case "LABEL_4":
		return 5.0, true
	}
	// Star-rating models label classes like "1 star" .. "5 stars".
	for _, r := range label {
		if r >= '1' && r <= '5' {
			return float64(r - '0'), true
		}
	}
	return 0, false
}

func (s *Scorer) keywordScore(text, sentiment string) ScoreResult {
	lower := strings.ToLower(text)

	score := 3.0
	matched := "no tier words"
	for _, tier := range scoreTiers {
		if w, ok := containsAny(lower, tier.words); ok {
			score = tier.score
			matched = w
			break
		}
	}

	// Sentiment disagreement nudges the keyword score by half a point,
	// bounded so positive never lifts past 4.0 and negative never drops
	// below 2.0.
	switch sentiment {
	case models.SentimentPositive:
		if score < 3.5 {
			score = clamp(score+0.5, score, 4.0)
		}
	case models.SentimentNegative:
		if score > 2.5 {
			score = clamp(score-0.5, 2.0, score)
		}
	}

	return ScoreResult{
		Score:      round1(clamp(score, 1.0, 5.0)),
		Sentiment:  orNeutral(sentiment),
		Confidence: 0.50,
		RawResult:  "keyword fallback: " + matched,
	}
}

func containsAny(haystack string, words []string) (string, bool) {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return w, true
		}
	}
	return "", false
}

func orNeutral(sentiment string) string {
	if sentiment == "" {
		return models.SentimentNeutral
	}
	return sentiment
}
