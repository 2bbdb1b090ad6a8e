package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iiTzIsh/reviewlens/internal/genai"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// maxTagSample bounds how many reviews are sent to the generative backend.
const maxTagSample = 50

// TopicMetric scores one topic across a review collection.
type TopicMetric struct {
	Percentage  int      `json:"percentage"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
}

// TagReport is the aggregate keyword/topic analysis for a review collection.
// It is always structurally valid; a backend failure yields the fixed
// fallback payload.
type TagReport struct {
	PositiveKeywords []string               `json:"positive_keywords"`
	NegativeKeywords []string               `json:"negative_keywords"`
	TopicMetrics     map[string]TopicMetric `json:"topic_metrics"`
	MainIssues       []string               `json:"main_issues"`
	EmergingTopics   []string               `json:"emerging_topics"`
}

// Tagger derives keyword/topic statistics from a review collection using a
// generative backend, with a static fallback payload.
type Tagger struct {
	gen genai.Client
}

// NewTagger creates a Tagger. A nil client means fallback-only operation.
func NewTagger(gen genai.Client) *Tagger {
	return &Tagger{gen: gen}
}

// RemoteEnabled reports whether a generative backend is configured.
func (t *Tagger) RemoteEnabled() bool { return t.gen != nil }

// GenerateTags produces the tag report for reviews. It never fails: missing
// credentials, malformed JSON, or any backend error yields the fallback.
func (t *Tagger) GenerateTags(ctx context.Context, reviews []models.AnnotatedReview) TagReport {
	if t.gen == nil || len(reviews) == 0 {
		return fallbackTagReport()
	}

	sample := reviews
	if len(sample) > maxTagSample {
		sample = sample[:maxTagSample]
	}

	out, err := t.gen.GenerateText(ctx, tagPrompt(sample))
	if err != nil {
		slog.Warn("tag generation backend failed, using fallback", "error", err)
		return fallbackTagReport()
	}

	var report TagReport
	if err := json.Unmarshal([]byte(stripCodeFences(out)), &report); err != nil {
		slog.Warn("tag generation returned invalid JSON, using fallback", "error", err)
		return fallbackTagReport()
	}

	return report
}

func tagPrompt(sample []models.AnnotatedReview) string {
	payload, _ := json.Marshal(sample)
	return fmt.Sprintf(`Analyze these %d hotel reviews and provide topic analysis in JSON format:

Reviews: %s

Return only JSON with this exact shape:
{
  "positive_keywords": ["..."],
  "negative_keywords": ["..."],
  "topic_metrics": {
    "service": {"percentage": 0, "keywords": ["..."], "description": "..."},
    "cleanliness": {"percentage": 0, "keywords": ["..."], "description": "..."},
    "location": {"percentage": 0, "keywords": ["..."], "description": "..."}
  },
  "main_issues": ["..."],
  "emerging_topics": ["..."]
}

Extract actual keywords from the review texts and provide realistic percentages.`,
		len(sample), payload)
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag, from generated text.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func fallbackTagReport() TagReport {
	return TagReport{
		PositiveKeywords: []string{"excellent", "clean", "friendly", "comfortable", "convenient"},
		NegativeKeywords: []string{"dirty", "noise", "rude", "expensive", "disappointing"},
		TopicMetrics: map[string]TopicMetric{
			"service": {
				Percentage:  75,
				Keywords:    []string{"staff", "support", "help"},
				Description: "Service quality analysis",
			},
			"cleanliness": {
				Percentage:  70,
				Keywords:    []string{"clean", "hygiene", "tidy"},
				Description: "Cleanliness standards analysis",
			},
			"location": {
				Percentage:  80,
				Keywords:    []string{"area", "transport", "access"},
				Description: "Location convenience analysis",
			},
		},
		MainIssues:     []string{"service issues", "cleanliness concerns", "noise problems"},
		EmergingTopics: []string{"technology concerns", "health safety", "value for money"},
	}
}
