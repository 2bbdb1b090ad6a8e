package analysis

import (
	"sort"
	"strings"

	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// SearchCriteria filters an in-memory review collection. Zero-valued fields
// are not applied.
type SearchCriteria struct {
	Sentiment       string   `json:"sentiment,omitempty"`
	MinScore        *float64 `json:"min_score,omitempty"`
	MaxScore        *float64 `json:"max_score,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	ExcludeKeywords []string `json:"exclude_keywords,omitempty"`
}

// SearchStats describes the outcome of a search pass.
type SearchStats struct {
	TotalSearched int            `json:"total_searched"`
	TotalMatched  int            `json:"total_matched"`
	MatchPercent  float64        `json:"match_percent"`
	Criteria      SearchCriteria `json:"criteria"`
}

// SearchResult holds matching reviews ranked by keyword relevance.
type SearchResult struct {
	Results []models.AnnotatedReview `json:"results"`
	Stats   SearchStats              `json:"search_stats"`
}

// Search applies criteria to reviews. All filters are conjunctive; within
// the keyword filter any single keyword is enough to match. When keywords
// are present, results are ordered by total keyword occurrences, most
// relevant first, with ties keeping collection order.
func Search(reviews []models.AnnotatedReview, criteria SearchCriteria) SearchResult {
	var matched []models.AnnotatedReview
	for _, r := range reviews {
		if matches(r, criteria) {
			matched = append(matched, r)
		}
	}

	if len(criteria.Keywords) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return keywordHits(matched[i].Text, criteria.Keywords) > keywordHits(matched[j].Text, criteria.Keywords)
		})
	}

	pct := 0.0
	if len(reviews) > 0 {
		pct = round2(float64(len(matched)) / float64(len(reviews)) * 100)
	}

	return SearchResult{
		Results: matched,
		Stats: SearchStats{
			TotalSearched: len(reviews),
			TotalMatched:  len(matched),
			MatchPercent:  pct,
			Criteria:      criteria,
		},
	}
}

func matches(r models.AnnotatedReview, c SearchCriteria) bool {
	if c.Sentiment != "" && !strings.EqualFold(r.Sentiment, c.Sentiment) {
		return false
	}

	// Score bounds require a score to be present.
	if c.MinScore != nil && (r.Score == nil || *r.Score < *c.MinScore) {
		return false
	}
	if c.MaxScore != nil && (r.Score == nil || *r.Score > *c.MaxScore) {
		return false
	}

	lower := strings.ToLower(r.Text)
	if len(c.Keywords) > 0 {
		found := false
		for _, kw := range c.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, kw := range c.ExcludeKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}

func keywordHits(text string, keywords []string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, kw := range keywords {
		total += strings.Count(lower, strings.ToLower(kw))
	}
	return total
}
