package usecase

import (
	"context"
	"testing"

	"github.com/cartwise/backend/internal/domain"
)

func newTestAggregator() *Aggregator {
	matcher := newTestMatcher(MatcherConfig{})
	return NewAggregator(matcher, false)
}

func TestAggregator_Aggregate(t *testing.T) {
	aggregator := newTestAggregator()
	ctx := context.Background()

	request := &domain.ShoppingRequest{
		Items: []domain.RequestItem{
			{Name: "rice"},
			{Name: "milk"},
		},
	}

	catalogs := map[string][]domain.ProductRecord{
		"Walmart": {
			{Store: "Walmart", Name: "Great Value Rice", Price: 4.25, Ingredients: []string{"rice"}},
			{Store: "Walmart", Name: "Whole Milk", Price: 2.50, Ingredients: []string{"milk"}},
		},
		"Safeway": {
			{Store: "Safeway", Name: "Signature Rice", Price: 4.50, Ingredients: []string{"rice"}},
		},
	}

	baskets := aggregator.Aggregate(ctx, request, catalogs)

	if len(baskets) != 2 {
		t.Fatalf("len(baskets) = %d, want 2", len(baskets))
	}

	walmart := baskets["Walmart"]
	if !walmart.Complete {
		t.Error("Walmart basket: Complete = false, want true")
	}
	if walmart.Total != 6.75 {
		t.Errorf("Walmart basket: Total = %v, want 6.75", walmart.Total)
	}
	if walmart.Matches["rice"].Product.Name != "Great Value Rice" {
		t.Errorf("Walmart rice = %v, want Great Value Rice", walmart.Matches["rice"].Product)
	}
	// Matched is callable directly on a map entry
	if !walmart.Matches["milk"].Matched() {
		t.Error("Walmart milk: Matched() = false, want true")
	}

	safeway := baskets["Safeway"]
	if safeway.Complete {
		t.Error("Safeway basket: Complete = true, want false (no milk)")
	}
	if safeway.Total != 4.50 {
		t.Errorf("Safeway basket: Total = %v, want 4.50", safeway.Total)
	}
	if reason := safeway.Matches["milk"].Reason; reason != domain.FailNoRelevantProduct {
		t.Errorf("Safeway milk reason = %s, want %s", reason, domain.FailNoRelevantProduct)
	}
}

func TestAggregator_Aggregate_PerItemBudget(t *testing.T) {
	aggregator := newTestAggregator()
	ctx := context.Background()

	request := &domain.ShoppingRequest{
		Items:         []domain.RequestItem{{Name: "rice"}, {Name: "milk"}},
		PerItemBudget: floatPtr(3.00),
	}

	catalogs := map[string][]domain.ProductRecord{
		"Walmart": {
			{Store: "Walmart", Name: "Great Value Rice", Price: 3.99, Ingredients: []string{"rice"}},
			{Store: "Walmart", Name: "Whole Milk", Price: 2.89, Ingredients: []string{"milk"}},
		},
	}

	baskets := aggregator.Aggregate(ctx, request, catalogs)
	walmart := baskets["Walmart"]

	if walmart.Complete {
		t.Error("Complete = true, want false: rice exceeds the per-item ceiling")
	}
	rice := walmart.Matches["rice"]
	if rice.Matched() {
		t.Errorf("rice matched %v, want over_budget miss", rice.Product)
	}
	if rice.Reason != domain.FailOverBudget {
		t.Errorf("rice reason = %s, want %s", rice.Reason, domain.FailOverBudget)
	}
	// Only the in-budget item contributes to the total
	if walmart.Total != 2.89 {
		t.Errorf("Total = %v, want 2.89", walmart.Total)
	}
}

func TestAggregator_Aggregate_MalformedRecords(t *testing.T) {
	aggregator := newTestAggregator()
	ctx := context.Background()

	request := &domain.ShoppingRequest{
		Items: []domain.RequestItem{{Name: "rice"}},
	}

	t.Run("malformed records flag the basket without failing it", func(t *testing.T) {
		catalogs := map[string][]domain.ProductRecord{
			"Walmart": {
				{Store: "Walmart", Name: "", Price: 1.99},
				{Store: "Walmart", Name: "No Price Rice", Price: 0},
				{Store: "Walmart", Name: "Great Value Rice", Price: 3.99, Ingredients: []string{"rice"}},
			},
		}

		baskets := aggregator.Aggregate(ctx, request, catalogs)
		walmart := baskets["Walmart"]

		if !walmart.PartialCatalog {
			t.Error("PartialCatalog = false, want true after dropping malformed records")
		}
		if !walmart.Complete {
			t.Error("Complete = false, want true: the valid record still matches")
		}
		if walmart.Matches["rice"].Product.Name != "Great Value Rice" {
			t.Errorf("rice = %v, want Great Value Rice", walmart.Matches["rice"].Product)
		}
	})

	t.Run("empty catalog is partial and incomplete", func(t *testing.T) {
		catalogs := map[string][]domain.ProductRecord{
			"Walmart": {},
		}

		baskets := aggregator.Aggregate(ctx, request, catalogs)
		walmart := baskets["Walmart"]

		if !walmart.PartialCatalog {
			t.Error("PartialCatalog = false, want true for empty catalog")
		}
		if walmart.Complete {
			t.Error("Complete = true, want false for empty catalog")
		}
	})
}

func TestAggregator_Aggregate_CancelledContext(t *testing.T) {
	aggregator := newTestAggregator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	request := &domain.ShoppingRequest{
		Items: []domain.RequestItem{{Name: "rice"}},
	}
	catalogs := map[string][]domain.ProductRecord{
		"Walmart": {
			{Store: "Walmart", Name: "Great Value Rice", Price: 3.99, Ingredients: []string{"rice"}},
		},
	}

	baskets := aggregator.Aggregate(ctx, request, catalogs)
	walmart := baskets["Walmart"]

	if walmart.Complete {
		t.Error("Complete = true, want false after cancellation")
	}
	// Skipped items are left unrecorded; no failure reason is invented
	if match, ok := walmart.Matches["rice"]; ok {
		t.Errorf("rice recorded as %+v, want absent after cancellation", match)
	}
}

func TestAggregator_Aggregate_ItemRestrictionsCombine(t *testing.T) {
	aggregator := newTestAggregator()
	ctx := context.Background()

	// Request-wide vegan plus an item-level gluten-free both apply to bread
	request := &domain.ShoppingRequest{
		Items: []domain.RequestItem{
			{Name: "bread", Restrictions: []string{"gluten-free"}},
		},
		Restrictions: []string{"vegan"},
	}

	catalogs := map[string][]domain.ProductRecord{
		"Walmart": {
			// vegan-safe but contains wheat
			{Store: "Walmart", Name: "Sourdough Bread", Price: 3.49, Ingredients: []string{"wheat flour", "water", "salt"}},
			// satisfies both
			{Store: "Walmart", Name: "Rice Flour Bread", Price: 5.99, Labels: []string{"gluten-free", "vegan"}},
		},
	}

	baskets := aggregator.Aggregate(ctx, request, catalogs)
	bread := baskets["Walmart"].Matches["bread"]

	if !bread.Matched() {
		t.Fatalf("bread reason = %s, want a match", bread.Reason)
	}
	if bread.Product.Name != "Rice Flour Bread" {
		t.Errorf("bread = %s, want Rice Flour Bread", bread.Product.Name)
	}
}
