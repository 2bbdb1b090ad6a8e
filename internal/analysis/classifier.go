// Package analysis implements the review analysis components: sentiment
// classification, numeric scoring, title generation, tag extraction,
// collection summarization, and search. Every component wraps an optional
// remote backend with a deterministic local fallback and never surfaces a
// backend failure to its caller.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/iiTzIsh/reviewlens/internal/hfapi"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// Classification is the outcome of one sentiment classification.
type Classification struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	RawResult  string  `json:"raw_result,omitempty"`
}

// sentimentLabels maps backend class labels to canonical sentiments.
// Unknown labels resolve to neutral.
var sentimentLabels = map[string]string{
	"LABEL_0":  models.SentimentNegative,
	"LABEL_1":  models.SentimentNeutral,
	"LABEL_2":  models.SentimentPositive,
	"NEGATIVE": models.SentimentNegative,
	"NEUTRAL":  models.SentimentNeutral,
	"POSITIVE": models.SentimentPositive,
}

// Strong-signal words for the keyword fallback. Deliberately tiny: the
// fallback only has to be directionally right, not clever.
var (
	positiveSignals = []string{"excellent", "amazing"}
	negativeSignals = []string{"terrible", "awful"}
)

// Classifier maps review text to a canonical sentiment with confidence.
type Classifier struct {
	hf    hfapi.Client
	model string
}

// NewClassifier creates a Classifier. A nil client means fallback-only
// operation; no remote calls are attempted.
func NewClassifier(hf hfapi.Client, model string) *Classifier {
	return &Classifier{hf: hf, model: model}
}

// RemoteEnabled reports whether a remote classification backend is configured.
func (c *Classifier) RemoteEnabled() bool { return c.hf != nil }

// Classify determines the sentiment of text. It never returns an error:
// backend failures degrade to the keyword fallback, and a cancelled context
// resolves to neutral at zero confidence with the error recorded.
func (c *Classifier) Classify(ctx context.Context, text string) Classification {
	if err := ctx.Err(); err != nil {
		return Classification{
			Sentiment:  models.SentimentNeutral,
			Confidence: 0.0,
			RawResult:  err.Error(),
		}
	}

	if c.hf != nil {
		scores, err := c.hf.TextClassification(ctx, c.model, text)
		if err != nil {
			slog.Warn("sentiment backend failed, using keyword fallback", "error", err)
		} else if cl, ok := classificationFromScores(scores); ok {
			return cl
		}
	}

	return keywordClassification(text)
}

// BatchClassify classifies texts sequentially. Items are independent: one
// item's degradation never affects the others.
func (c *Classifier) BatchClassify(ctx context.Context, texts []string) []Classification {
	results := make([]Classification, 0, len(texts))
	for _, t := range texts {
		results = append(results, c.Classify(ctx, t))
	}
	return results
}

func classificationFromScores(scores []hfapi.ClassScore) (Classification, bool) {
	if len(scores) == 0 {
		return Classification{}, false
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	sentiment, ok := sentimentLabels[strings.ToUpper(best.Label)]
	if !ok {
		sentiment = models.SentimentNeutral
	}

	return Classification{
		Sentiment:  sentiment,
		Confidence: round2(best.Score),
		RawResult:  fmt.Sprintf("backend label %s score %.4f", best.Label, best.Score),
	}, true
}

func keywordClassification(text string) Classification {
	lower := strings.ToLower(text)

	for _, w := range positiveSignals {
		if strings.Contains(lower, w) {
			return Classification{
				Sentiment:  models.SentimentPositive,
				Confidence: 0.70,
				RawResult:  "keyword fallback: " + w,
			}
		}
	}
	for _, w := range negativeSignals {
		if strings.Contains(lower, w) {
			return Classification{
				Sentiment:  models.SentimentNegative,
				Confidence: 0.70,
				RawResult:  "keyword fallback: " + w,
			}
		}
	}

	return Classification{
		Sentiment:  models.SentimentNeutral,
		Confidence: 0.50,
		RawResult:  "keyword fallback: no signal words",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
