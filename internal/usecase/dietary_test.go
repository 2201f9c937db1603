package usecase

import (
	"testing"

	"github.com/cartwise/backend/internal/domain"
)

func TestDietaryEvaluator_Evaluate(t *testing.T) {
	evaluator := NewDietaryEvaluator(nil)

	tests := []struct {
		name          string
		product       domain.ProductRecord
		restrictions  []string
		wantSuitable  bool
		wantSatisfied []string
		wantViolated  []string
		wantUnknown   []string
	}{
		{
			name: "label confirms gluten-free",
			product: domain.ProductRecord{
				Name:   "Organic Rice",
				Price:  3.99,
				Labels: []string{"Gluten-Free", "Organic"},
			},
			restrictions:  []string{"gluten-free"},
			wantSuitable:  true,
			wantSatisfied: []string{"gluten-free"},
		},
		{
			name: "wheat ingredient violates gluten-free",
			product: domain.ProductRecord{
				Name:        "Wheat Bread",
				Price:       2.49,
				Ingredients: []string{"wheat flour", "water", "yeast"},
			},
			restrictions: []string{"gluten-free"},
			wantSuitable: false,
			wantViolated: []string{"gluten-free"},
		},
		{
			name: "rice flour does not violate gluten-free",
			product: domain.ProductRecord{
				Name:        "Rice Crackers",
				Price:       3.29,
				Ingredients: []string{"rice flour", "salt"},
			},
			restrictions:  []string{"gluten-free"},
			wantSuitable:  true,
			wantSatisfied: []string{"gluten-free"},
		},
		{
			name: "milk in ingredients violates vegan",
			product: domain.ProductRecord{
				Name:        "Sandwich Bread",
				Price:       2.99,
				Ingredients: []string{"flour", "milk", "sugar"},
			},
			restrictions: []string{"vegan"},
			wantSuitable: false,
			wantViolated: []string{"vegan"},
		},
		{
			name: "allergen statement violates nut-free",
			product: domain.ProductRecord{
				Name:         "Granola Bar",
				Price:        1.99,
				Ingredients:  []string{"oats", "honey"},
				AllergenInfo: "Contains: Almonds",
			},
			restrictions: []string{"nut-free"},
			wantSuitable: false,
			wantViolated: []string{"nut-free"},
		},
		{
			name: "contains-none allergen statement carries no terms",
			product: domain.ProductRecord{
				Name:         "Plain Rice",
				Price:        3.49,
				Ingredients:  []string{"rice"},
				AllergenInfo: "Contains: None",
			},
			restrictions:  []string{"nut-free"},
			wantSuitable:  true,
			wantSatisfied: []string{"nut-free"},
		},
		{
			name: "missing ingredient data is unknown, not violated",
			product: domain.ProductRecord{
				Name:  "Mystery Snack",
				Price: 0.99,
			},
			restrictions: []string{"vegan"},
			wantSuitable: false,
			wantUnknown:  []string{"vegan"},
		},
		{
			name: "clean ingredient list does not confirm organic certification",
			product: domain.ProductRecord{
				Name:        "Plain Rice",
				Price:       3.49,
				Ingredients: []string{"rice"},
			},
			restrictions: []string{"organic"},
			wantSuitable: false,
			wantUnknown:  []string{"organic"},
		},
		{
			name: "organic confirmed by ingredient term",
			product: domain.ProductRecord{
				Name:        "Brown Rice",
				Price:       4.29,
				Ingredients: []string{"organic brown rice"},
			},
			restrictions:  []string{"organic"},
			wantSuitable:  true,
			wantSatisfied: []string{"organic"},
		},
		{
			name: "halal requires certification",
			product: domain.ProductRecord{
				Name:        "Chicken Broth",
				Price:       2.79,
				Ingredients: []string{"chicken stock", "salt"},
			},
			restrictions: []string{"halal"},
			wantSuitable: false,
			wantUnknown:  []string{"halal"},
		},
		{
			name: "underscore and case spellings normalize",
			product: domain.ProductRecord{
				Name:   "Rice Cakes",
				Price:  2.19,
				Labels: []string{"gluten-free"},
			},
			restrictions:  []string{"Gluten_Free"},
			wantSuitable:  true,
			wantSatisfied: []string{"Gluten_Free"},
		},
		{
			name: "unsupported restriction is unknown",
			product: domain.ProductRecord{
				Name:        "Apple Juice",
				Price:       3.59,
				Ingredients: []string{"apple juice"},
			},
			restrictions: []string{"paleo"},
			wantSuitable: false,
			wantUnknown:  []string{"paleo"},
		},
		{
			name: "mixed outcomes bucket independently",
			product: domain.ProductRecord{
				Name:        "Veggie Soup",
				Price:       4.99,
				Labels:      []string{"vegan"},
				Ingredients: []string{"carrots", "wheat noodles", "celery"},
			},
			restrictions:  []string{"vegan", "gluten-free"},
			wantSuitable:  false,
			wantSatisfied: []string{"vegan"},
			wantViolated:  []string{"gluten-free"},
		},
		{
			name: "no restrictions is trivially suitable",
			product: domain.ProductRecord{
				Name:  "Anything",
				Price: 1.00,
			},
			restrictions: nil,
			wantSuitable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluator.Evaluate(&tt.product, tt.restrictions)

			if got.Suitable != tt.wantSuitable {
				t.Errorf("Suitable = %v, want %v (rationale: %s)", got.Suitable, tt.wantSuitable, got.Rationale)
			}
			assertSameStrings(t, "Satisfied", got.Satisfied, tt.wantSatisfied)
			assertSameStrings(t, "Violated", got.Violated, tt.wantViolated)
			assertSameStrings(t, "Unknown", got.Unknown, tt.wantUnknown)
		})
	}
}

func TestDietaryEvaluator_AssumeSatisfiedWhenUnknown(t *testing.T) {
	product := domain.ProductRecord{Name: "Mystery Snack", Price: 0.99}

	t.Run("unknown disqualifies by default", func(t *testing.T) {
		evaluator := NewDietaryEvaluator(nil)
		got := evaluator.Evaluate(&product, []string{"vegan"})
		if got.Suitable {
			t.Error("Suitable = true, want false when unknown and not assumed")
		}
	})

	t.Run("configured restriction tolerates unknown", func(t *testing.T) {
		evaluator := NewDietaryEvaluator([]string{"vegan"})
		got := evaluator.Evaluate(&product, []string{"vegan"})
		if !got.Suitable {
			t.Errorf("Suitable = false, want true when vegan is assume-satisfied (rationale: %s)", got.Rationale)
		}
		// Unknown bucket still records the restriction for transparency
		if len(got.Unknown) != 1 || got.Unknown[0] != "vegan" {
			t.Errorf("Unknown = %v, want [vegan]", got.Unknown)
		}
	})

	t.Run("assumption is per restriction", func(t *testing.T) {
		evaluator := NewDietaryEvaluator([]string{"vegan"})
		got := evaluator.Evaluate(&product, []string{"vegan", "gluten-free"})
		if got.Suitable {
			t.Error("Suitable = true, want false: gluten-free unknown is not assumed")
		}
	})
}

func TestNormalizeRestriction(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gluten-free", "gluten-free"},
		{"Gluten_Free", "gluten-free"},
		{"  GLUTEN FREE  ", "gluten-free"},
		{"Vegan", "vegan"},
		{"dairy free", "dairy-free"},
	}

	for _, tt := range tests {
		if got := normalizeRestriction(tt.in); got != tt.want {
			t.Errorf("normalizeRestriction(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// assertSameStrings compares two string slices treating nil and empty as equal
func assertSameStrings(t *testing.T, field string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s = %v, want %v", field, got, want)
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s = %v, want %v", field, got, want)
			return
		}
	}
}
