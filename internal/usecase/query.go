package usecase

import (
	"log"
	"regexp"
	"strings"
)

// Compiled regex patterns for query preprocessing
var (
	// Matches promo marker suffixes retailers append to discounted items,
	// e.g. " - Clearance", " - Rollback", " - BOGO"
	promoSuffixRegex = regexp.MustCompile(`(?i)\s*[-–]\s*(clearance|rollback|sale|bogo|deal of the day|price drop)\s*$`)

	// Matches size/quantity patterns like "15-piece", "6qt", "90ct", "12 pack"
	sizePatternRegex = regexp.MustCompile(`(?i)\b\d+\.?\d*\s*[- ]?(?:piece|pc|qt|quart|oz|ct|count|pk|pack|inch|in|ft)\b`)
)

// QueryPreprocessor turns a noisy scraped retail title into a focused
// Amazon search query
type QueryPreprocessor struct {
	enableDebugLogging bool
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{enableDebugLogging: enableDebugLogging}
}

// BuildSearchQuery strips retail promo markers and size noise from a product
// title. Kept deliberately lighter-handed than tokenize: the query goes to a
// search engine that handles its own stemming, so only clearly harmful noise
// is removed.
func (p *QueryPreprocessor) BuildSearchQuery(title string) string {
	if title == "" {
		return ""
	}

	original := title

	cleaned := promoSuffixRegex.ReplaceAllString(title, "")
	cleaned = sizePatternRegex.ReplaceAllString(cleaned, " ")
	cleaned = multipleSpacesRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	// Overlong queries degrade search relevance; cut at a word boundary.
	if len(cleaned) > 100 {
		cleaned = cleaned[:100]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > 50 {
			cleaned = cleaned[:lastSpace]
		}
	}

	if p.enableDebugLogging {
		log.Printf("[QUERY] %q -> %q", original, cleaned)
	}

	return cleaned
}
