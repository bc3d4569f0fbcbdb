// Package classify holds the pure classification rules used across the
// pipeline: market saturation, repository activity, founder-name validation,
// and question categorization. These are deterministic so the same upstream
// data always yields the same report fields regardless of model phrasing.
package classify

import (
	"strings"
	"time"
	"unicode"

	"github.com/deckray/deckray/internal/domain/model"
)

// Market saturation thresholds by competitor count.
const (
	saturationLowMax    = 3
	saturationMediumMax = 8
)

// Saturation maps a competitor count to a market saturation level.
// 0-3 -> low, 4-8 -> medium, 9+ -> high.
func Saturation(competitorCount int) string {
	switch {
	case competitorCount <= saturationLowMax:
		return "low"
	case competitorCount <= saturationMediumMax:
		return "medium"
	default:
		return "high"
	}
}

// Repository activity thresholds in days since last update.
const (
	activityVeryHighDays = 7
	activityHighDays     = 30
	activityMediumDays   = 90
)

// Activity buckets a repository's last update time relative to now.
// A zero lastUpdated yields ActivityUnknown.
func Activity(lastUpdated, now time.Time) model.Activity {
	if lastUpdated.IsZero() {
		return model.ActivityUnknown
	}

	days := int(now.Sub(lastUpdated).Hours() / 24)
	switch {
	case days <= activityVeryHighDays:
		return model.ActivityVeryHigh
	case days <= activityHighDays:
		return model.ActivityHigh
	case days <= activityMediumDays:
		return model.ActivityMedium
	default:
		return model.ActivityLow
	}
}

// Founder name validation bounds. The regex-fallback extraction path uses
// tighter bounds because its candidates are lower confidence.
const (
	nameMinLen         = 2
	nameMaxLen         = 100
	fallbackNameMinLen = 3
	fallbackNameMaxLen = 50
	nameMaxTokens      = 4
)

// ValidFounderName reports whether name is plausible as a person's name
// extracted from a deck: length strictly between 2 and 100, at most four
// space-separated tokens, and no control or structural characters.
func ValidFounderName(name string) bool {
	return validName(name, nameMinLen, nameMaxLen)
}

// ValidFallbackName applies the stricter bounds used by the regex-fallback
// extraction path: length strictly between 3 and 50.
func ValidFallbackName(name string) bool {
	return validName(name, fallbackNameMinLen, fallbackNameMaxLen)
}

func validName(name string, minLen, maxLen int) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) <= minLen || len(trimmed) >= maxLen {
		return false
	}
	if len(strings.Fields(trimmed)) > nameMaxTokens {
		return false
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return false
		}
		switch r {
		case '\n', '\t', '|', '•', '·':
			return false
		}
	}
	// A separator hyphen between words marks a list entry, not a name.
	if strings.Contains(trimmed, " - ") {
		return false
	}
	return true
}

// Question categories.
const (
	CategoryTeam       = "team"
	CategoryMarket     = "market"
	CategoryTechnology = "technology"
	CategoryBusiness   = "business"
	CategoryRisk       = "risk"
	CategoryGeneral    = "general"
)

var categoryKeywords = map[string][]string{
	CategoryTeam:       {"team", "founder", "experience", "background", "execution", "leadership"},
	CategoryMarket:     {"market", "competition", "customer", "demand", "size", "growth"},
	CategoryTechnology: {"technology", "product", "development", "technical", "platform", "ai", "ml"},
	CategoryBusiness:   {"revenue", "business model", "pricing", "cost", "financial", "funding"},
	CategoryRisk:       {"risk", "challenge", "problem", "obstacle", "threat"},
}

// Category order determines which bucket wins when keywords overlap.
var categoryOrder = []string{
	CategoryTeam, CategoryMarket, CategoryTechnology, CategoryBusiness, CategoryRisk,
}

// CategorizeQuestion buckets a question by keyword matching, defaulting to
// general when nothing matches.
func CategorizeQuestion(question string) string {
	lower := strings.ToLower(question)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return CategoryGeneral
}

// KnownCategory reports whether a model-supplied category is one we accept.
func KnownCategory(category string) bool {
	switch category {
	case CategoryTeam, CategoryMarket, CategoryTechnology, CategoryBusiness, CategoryRisk, CategoryGeneral:
		return true
	default:
		return false
	}
}
