package usecase

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// extendedStopWords includes basic English stop words plus catalog noise
// (sizes, packaging, marketing terms) that should not drive relevance.
var extendedStopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	// Size/quantity units
	"oz": true, "fl": true, "lb": true, "lbs": true, "ml": true,
	"gallon": true, "quart": true, "pint": true, "liter": true, "liters": true,
	"gram": true, "grams": true, "kg": true, "ounce": true, "ounces": true,
	// Packaging terms
	"pack": true, "packs": true, "count": true, "ct": true, "pk": true,
	"box": true, "bag": true, "bottle": true, "bottles": true,
	"carton": true, "container": true, "pouch": true, "jar": true,
	// Marketing/generic terms
	"size": true, "value": true, "family": true, "each": true, "per": true,
	"bonus": true, "new": true, "improved": true, "product": true,
}

// MatcherConfig holds configuration for the product matcher
type MatcherConfig struct {
	// MinRelevance is the fraction of item-name tokens that must appear in a
	// product name for the product to count as relevant (0..1].
	MinRelevance        float64
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
	EnableDebugLogging  bool
}

// Matcher selects the best product for a requested item within one store's
// catalog: relevance filter first, dietary filter second, then a fully
// deterministic ranking by effective price.
type Matcher struct {
	dietary             *DietaryEvaluator
	minRelevance        float64
	enableFuzzyMatching bool
	fuzzyEditDistance   int
	enableDebugLogging  bool
}

// NewMatcher creates a matcher with the given configuration
func NewMatcher(dietary *DietaryEvaluator, config MatcherConfig) *Matcher {
	minRelevance := config.MinRelevance
	if minRelevance <= 0 || minRelevance > 1 {
		minRelevance = 1.0 // Default: every item token must match
	}

	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1 // Default edit distance of 1
	}

	return &Matcher{
		dietary:             dietary,
		minRelevance:        minRelevance,
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// Match finds the best product in catalog for the named item under the given
// restrictions. The winner is the cheapest suitable relevant product; ties
// break on more confirmed restrictions, then lexical product name, so the
// result is unique for a given input. An unmatched item carries an explicit
// reason and is never silently substituted.
func (m *Matcher) Match(itemName string, restrictions []string, catalog []domain.ProductRecord) domain.ItemMatch {
	itemTokens := tokenize(itemName)
	if len(itemTokens) == 0 {
		return domain.ItemMatch{Item: itemName, Reason: domain.FailNoRelevantProduct}
	}

	type candidate struct {
		product     *domain.ProductRecord
		suitability *domain.SuitabilityResult
	}

	var relevantCount int
	var candidates []candidate

	for i := range catalog {
		product := &catalog[i]
		if !product.Valid() {
			continue
		}
		if m.relevance(itemTokens, product.Name) < m.minRelevance {
			continue
		}
		relevantCount++

		suitability := m.dietary.Evaluate(product, restrictions)
		if m.enableDebugLogging {
			log.Printf("[MATCH] item=%q product=%q price=%.2f suitable=%v",
				itemName, product.Name, product.EffectivePrice(), suitability.Suitable)
		}
		if !suitability.Suitable {
			continue
		}
		candidates = append(candidates, candidate{product: product, suitability: suitability})
	}

	if relevantCount == 0 {
		return domain.ItemMatch{Item: itemName, Reason: domain.FailNoRelevantProduct}
	}
	if len(candidates) == 0 {
		return domain.ItemMatch{Item: itemName, Reason: domain.FailDietaryMismatch}
	}

	sort.Slice(candidates, func(i, j int) bool {
		pi, pj := candidates[i].product, candidates[j].product
		if pi.EffectivePrice() != pj.EffectivePrice() {
			return pi.EffectivePrice() < pj.EffectivePrice()
		}
		if candidates[i].suitability.SatisfiedCount() != candidates[j].suitability.SatisfiedCount() {
			return candidates[i].suitability.SatisfiedCount() > candidates[j].suitability.SatisfiedCount()
		}
		return pi.Name < pj.Name
	})

	best := candidates[0]
	if m.enableDebugLogging {
		log.Printf("[MATCH] item=%q winner=%q at %.2f", itemName, best.product.Name, best.product.EffectivePrice())
	}
	return domain.ItemMatch{Item: itemName, Product: best.product, Suitability: best.suitability}
}

// relevance returns the fraction of item tokens found in the product name.
// A token counts as found on an exact hit, a substring hit in either
// direction (so "rice" matches "rices"), or a fuzzy hit when enabled.
func (m *Matcher) relevance(itemTokens []string, productName string) float64 {
	productTokens := tokenize(productName)
	if len(productTokens) == 0 {
		return 0
	}

	matched := 0
	for _, it := range itemTokens {
		for _, pt := range productTokens {
			if it == pt ||
				(len(it) > 3 && strings.Contains(pt, it)) ||
				(len(pt) > 3 && strings.Contains(it, pt)) ||
				(m.enableFuzzyMatching && fuzzyTokenMatch(it, pt, m.fuzzyEditDistance)) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(itemTokens))
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, catalog noise, and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	words := strings.Fields(cleaned)

	var tokens []string
	for _, word := range words {
		if len(word) <= 1 {
			continue
		}
		if extendedStopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Only apply fuzzy matching to tokens >= 4 chars to avoid false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
