package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cartwise/backend/internal/domain"
)

// ruleOutcome is the result of checking one restriction against one product.
type ruleOutcome int

const (
	outcomeSatisfied ruleOutcome = iota
	outcomeViolated
	outcomeUnknown
)

// restrictionRule is a fixed evaluator for one supported dietary restriction.
// Labels confirm, forbidden terms deny; what a clean ingredient list proves
// depends on the rule kind (see check).
type restrictionRule struct {
	// labels whose presence on the product confirms the restriction
	labels []string
	// ingredient/allergen terms whose presence violates the restriction
	forbidden []string
	// positive ingredient terms that confirm the restriction as a fallback
	// when no label is declared (e.g. "organic" appearing in ingredients)
	positive []string
	// certification rules (organic, halal, kosher) cannot be confirmed by
	// the mere absence of forbidden terms
	certification bool
}

// restrictionRules is the registry of supported restrictions, keyed by
// normalized name. Scattered string matching is deliberately avoided: each
// restriction is one entry with its full term lists in one place.
var restrictionRules = map[string]restrictionRule{
	"gluten-free": {
		labels:    []string{"gluten-free", "gluten free", "certified gluten-free"},
		forbidden: []string{"wheat", "barley", "rye", "malt", "gluten", "semolina", "spelt", "farro", "couscous", "triticale"},
	},
	"vegan": {
		labels: []string{"vegan", "certified vegan", "plant-based"},
		forbidden: []string{
			"milk", "cheese", "butter", "cream", "yogurt", "whey", "casein",
			"egg", "honey", "gelatin", "lard", "beef", "pork", "chicken",
			"turkey", "fish", "anchovy", "shrimp", "meat",
		},
	},
	"vegetarian": {
		labels:    []string{"vegetarian", "vegan", "plant-based"},
		forbidden: []string{"beef", "pork", "chicken", "turkey", "fish", "anchovy", "shrimp", "meat", "gelatin", "lard"},
	},
	"dairy-free": {
		labels:    []string{"dairy-free", "dairy free", "non-dairy"},
		forbidden: []string{"milk", "cheese", "butter", "cream", "yogurt", "whey", "casein", "lactose"},
	},
	"nut-free": {
		labels:    []string{"nut-free", "nut free"},
		forbidden: []string{"peanut", "almond", "cashew", "walnut", "pecan", "hazelnut", "pistachio", "macadamia", "tree nut"},
	},
	"halal": {
		labels:        []string{"halal", "halal certified"},
		forbidden:     []string{"pork", "lard", "bacon", "ham", "gelatin", "alcohol", "wine", "beer", "rum"},
		certification: true,
	},
	"kosher": {
		labels:        []string{"kosher", "kosher certified"},
		forbidden:     []string{"pork", "bacon", "ham", "lard", "shellfish", "shrimp", "crab", "lobster"},
		certification: true,
	},
	"organic": {
		labels:        []string{"organic", "certified organic", "usda organic"},
		positive:      []string{"organic"},
		certification: true,
	},
}

// check evaluates the rule against one product. Evaluation order: declared
// labels confirm, forbidden terms in ingredients or the allergen statement
// deny, positive ingredient terms confirm as fallback. Beyond that, a clean
// non-empty ingredient list confirms exclusion rules (gluten-free, vegan,
// ...) but not certification rules, and empty ingredient data is unknown.
func (r restrictionRule) check(p *domain.ProductRecord) ruleOutcome {
	for _, label := range r.labels {
		if p.HasLabel(label) {
			return outcomeSatisfied
		}
	}

	haystack := ingredientText(p)
	if haystack != "" {
		for _, term := range r.forbidden {
			if strings.Contains(haystack, term) {
				return outcomeViolated
			}
		}
		for _, term := range r.positive {
			if strings.Contains(haystack, term) {
				return outcomeSatisfied
			}
		}
	}

	if r.certification || len(p.Ingredients) == 0 {
		return outcomeUnknown
	}
	return outcomeSatisfied
}

// ingredientText flattens the ingredient list and allergen statement into a
// single lowercase haystack for term scanning.
func ingredientText(p *domain.ProductRecord) string {
	parts := make([]string, 0, len(p.Ingredients)+1)
	for _, ing := range p.Ingredients {
		parts = append(parts, strings.ToLower(ing))
	}
	allergen := strings.ToLower(strings.TrimSpace(p.AllergenInfo))
	// "Contains: None" style statements carry no allergen terms
	if allergen != "" && allergen != "contains: none" && allergen != "none" {
		parts = append(parts, allergen)
	}
	return strings.Join(parts, "; ")
}

// normalizeRestriction maps request spellings ("Gluten_Free", "gluten free")
// onto registry keys.
func normalizeRestriction(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// DietaryEvaluator decides whether products satisfy requested dietary
// restrictions. Deterministic and side-effect-free.
type DietaryEvaluator struct {
	// assumeUnknown lists restrictions configured to count as satisfied when
	// the product data cannot decide them. Conservative default: empty.
	assumeUnknown map[string]bool
}

// NewDietaryEvaluator creates an evaluator. assumeSatisfiedWhenUnknown names
// restrictions for which an unknown outcome should not disqualify a product.
func NewDietaryEvaluator(assumeSatisfiedWhenUnknown []string) *DietaryEvaluator {
	assume := make(map[string]bool, len(assumeSatisfiedWhenUnknown))
	for _, name := range assumeSatisfiedWhenUnknown {
		assume[normalizeRestriction(name)] = true
	}
	return &DietaryEvaluator{assumeUnknown: assume}
}

// Evaluate checks a product against a set of restrictions. Every restriction
// lands in exactly one bucket; unknown is tracked separately from violated.
// The product is suitable only if each restriction is confirmed satisfied or
// is explicitly configured as assume-satisfied-when-unknown.
func (e *DietaryEvaluator) Evaluate(product *domain.ProductRecord, restrictions []string) *domain.SuitabilityResult {
	result := &domain.SuitabilityResult{Suitable: true}
	var notes []string

	for _, name := range restrictions {
		key := normalizeRestriction(name)
		rule, supported := restrictionRules[key]

		var out ruleOutcome
		if supported {
			out = rule.check(product)
		} else {
			// unsupported restriction names cannot be evaluated
			out = outcomeUnknown
		}

		switch out {
		case outcomeSatisfied:
			result.Satisfied = append(result.Satisfied, name)
		case outcomeViolated:
			result.Violated = append(result.Violated, name)
			result.Suitable = false
			notes = append(notes, fmt.Sprintf("%s: disqualifying ingredient present", key))
		case outcomeUnknown:
			result.Unknown = append(result.Unknown, name)
			if !e.assumeUnknown[key] {
				result.Suitable = false
				notes = append(notes, fmt.Sprintf("%s: could not be confirmed from product data", key))
			}
		}
	}

	sort.Strings(notes)
	result.Rationale = strings.Join(notes, "; ")
	return result
}
