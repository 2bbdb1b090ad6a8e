package analysis

import (
	"regexp"
	"strings"

	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// TitleResult is the outcome of one title generation.
type TitleResult struct {
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	Sentiment  string  `json:"sentiment"`
}

const (
	maxPhraseLen = 40
	maxTitleLen  = 45
)

// Phrase patterns compiled once at package init. Experience patterns key on
// emotional words, aspect patterns on hotel aspects followed by a descriptor.
var (
	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(amazing|excellent|outstanding|perfect|great|wonderful)\s+([a-z][a-z ]{1,30})`),
		regexp.MustCompile(`(terrible|awful|horrible|disappointing|poor|bad)\s+([a-z][a-z ]{1,30})`),
		regexp.MustCompile(`(love|loved|enjoyed|impressed|delighted)\s+([a-z][a-z ]{1,30})`),
		regexp.MustCompile(`(best|worst|favorite|favourite)\s+([a-z][a-z ]{1,30})`),
	}
	aspectPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(staff|service|reception|concierge)\s+(?:was|were)\s+([a-z][a-z ]{1,25})`),
		regexp.MustCompile(`(room|rooms|accommodation)\s+(?:was|were)\s+([a-z][a-z ]{1,25})`),
		regexp.MustCompile(`(breakfast|food|restaurant|dining)\s+(?:was|were)\s+([a-z][a-z ]{1,25})`),
		regexp.MustCompile(`(location|area|neighborhood)\s+(?:is|was)\s+([a-z][a-z ]{1,25})`),
		regexp.MustCompile(`(wifi|internet|connection)\s+(?:was|were)\s+([a-z][a-z ]{1,25})`),
		regexp.MustCompile(`(pool|gym|spa|facilities)\s+(?:was|were)\s+([a-z][a-z ]{1,25})`),
	}
)

var hospitalityWords = []string{
	"hotel", "room", "staff", "service", "location", "breakfast",
	"pool", "wifi", "clean", "comfortable", "good", "great", "bad", "poor",
}

var sentimentWords = []string{
	"amazing", "excellent", "great", "wonderful", "perfect", "outstanding",
	"terrible", "awful", "poor", "bad", "horrible", "disappointing",
	"good", "nice", "decent", "average", "okay",
}

var sentimentAdjectives = map[string]string{
	models.SentimentPositive: "Excellent",
	models.SentimentNegative: "Disappointing",
	models.SentimentNeutral:  "Average",
}

var cannedTitles = map[string]string{
	models.SentimentPositive: "Great Hotel Experience",
	models.SentimentNegative: "Disappointing Stay",
	models.SentimentNeutral:  "Average Hotel Visit",
}

// TitleGenerator derives short human-readable titles from review text.
// It is purely local and deterministic.
type TitleGenerator struct{}

// NewTitleGenerator creates a TitleGenerator.
func NewTitleGenerator() *TitleGenerator {
	return &TitleGenerator{}
}

// Generate produces a title for text. It never fails; blank input yields
// "Untitled Review" at zero confidence.
func (g *TitleGenerator) Generate(text, sentiment string) TitleResult {
	if strings.TrimSpace(text) == "" {
		return TitleResult{
			Title:      "Untitled Review",
			Confidence: 0.0,
			Sentiment:  orNeutral(sentiment),
		}
	}

	lower := strings.ToLower(text)

	title, confidence := extractPhraseTitle(lower)
	if title == "" {
		title = firstHospitalitySentence(text)
		confidence = 0.7
	}
	if title == "" {
		title = cannedTitle(sentiment)
		confidence = 0.5
	}

	if sentiment != "" && !hasSentimentWord(title) {
		if adj, ok := sentimentAdjectives[sentiment]; ok {
			title = adj + " " + title
		}
	}

	return TitleResult{
		Title:      truncateTitle(title, maxTitleLen),
		Confidence: confidence,
		Sentiment:  orNeutral(sentiment),
	}
}

func extractPhraseTitle(lower string) (string, float64) {
	for _, re := range append(experiencePatterns, aspectPatterns...) {
		m := re.FindStringSubmatch(lower)
		if len(m) < 3 {
			continue
		}
		phrase := strings.TrimSpace(m[1] + " " + m[2])
		if len(phrase) < 5 {
			continue
		}
		if len(phrase) > maxPhraseLen {
			phrase = strings.TrimSpace(phrase[:maxPhraseLen])
		}
		return titleCase(phrase), 0.8
	}
	return "", 0
}

// firstHospitalitySentence returns the first sentence mentioning a
// hospitality keyword, trimmed to 50 characters.
func firstHospitalitySentence(text string) string {
	sentences := regexp.MustCompile(`[.!?]+`).Split(text, -1)
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) < 15 {
			continue
		}
		lower := strings.ToLower(s)
		for _, w := range hospitalityWords {
			if strings.Contains(lower, w) {
				if len(s) > 50 {
					s = s[:50]
				}
				return titleCase(strings.ToLower(s))
			}
		}
	}
	return ""
}

func cannedTitle(sentiment string) string {
	if t, ok := cannedTitles[sentiment]; ok {
		return t
	}
	return cannedTitles[models.SentimentNeutral]
}

func hasSentimentWord(title string) bool {
	lower := strings.ToLower(title)
	for _, w := range sentimentWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// titleCase capitalizes each word, lowercasing short connectives.
func titleCase(s string) string {
	skip := map[string]bool{
		"a": true, "an": true, "the": true, "and": true, "or": true,
		"in": true, "on": true, "at": true, "to": true, "for": true,
		"of": true, "with": true,
	}
	words := strings.Fields(s)
	for i, w := range words {
		if i > 0 && skip[w] {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncateTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
