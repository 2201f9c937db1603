package usecase

import (
	"log"
	"sort"

	"github.com/cartwise/backend/internal/domain"
)

// SelectorConfig holds configuration for the plan selector
type SelectorConfig struct {
	MultiStoreEnabled  bool
	EnableDebugLogging bool
}

// Selector chooses the final purchasing plan from the aggregated baskets:
// the cheapest complete single-store basket, or, when enabled, a multi-store
// split that buys each item wherever it is cheapest. Selection runs over the
// complete immutable basket collection; there is no early-exit accumulation.
type Selector struct {
	multiStore         bool
	enableDebugLogging bool
}

// NewSelector creates a selector with the given configuration
func NewSelector(config SelectorConfig) *Selector {
	return &Selector{
		multiStore:         config.MultiStoreEnabled,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// singleCandidate is a complete basket considered for a single-store plan.
type singleCandidate struct {
	store  string
	basket domain.StoreBasket
}

// Select resolves the purchasing plan for the request. The returned plan
// always carries the per-store cost summary for every evaluated store. A nil
// error means a viable plan was found; otherwise the plan describes the
// failure (unsatisfiable or over budget) and the error names it.
func (s *Selector) Select(
	baskets map[string]domain.StoreBasket,
	request *domain.ShoppingRequest,
) (*domain.RecommendationPlan, error) {
	storeTotals := make(map[string]float64, len(baskets))
	for store, basket := range baskets {
		storeTotals[store] = basket.Total
	}
	partial := partialCatalogStores(baskets)

	// Items with no suitable match anywhere make the request unsatisfiable:
	// no meaningful best store exists while an item is wholly uncoverable.
	uncovered := uncoveredItems(baskets, request)
	if len(uncovered) > 0 {
		return &domain.RecommendationPlan{
			Type:                 domain.PlanUnsatisfiable,
			Recommendations:      bestEffortRecommendations(baskets, request),
			StoreTotals:          storeTotals,
			PartialCatalogStores: partial,
			Uncovered:            uncovered,
		}, domain.ErrUnsatisfiable
	}

	single := cheapestComplete(baskets)

	var multi *domain.RecommendationPlan
	if s.multiStore {
		multi = s.multiStoreSplit(baskets, request)
		multi.StoreTotals = storeTotals
		multi.PartialCatalogStores = partial
	}

	fits := func(total float64) bool {
		return request.TotalBudget == nil || total <= *request.TotalBudget
	}

	if s.enableDebugLogging {
		if single != nil {
			log.Printf("[SELECT] best single store %q at %.2f", single.store, single.basket.Total)
		}
		if multi != nil {
			log.Printf("[SELECT] multi-store split at %.2f", multi.Total)
		}
	}

	// Multi-store wins only when strictly cheaper than the best single-store
	// total; on equal totals fewer trips is the conservative default. A
	// candidate over the global budget ceiling is never chosen.
	switch {
	case single != nil && fits(single.basket.Total) &&
		(multi == nil || !fits(multi.Total) || multi.Total >= single.basket.Total):
		return singleStorePlan(single, request, storeTotals, partial), nil

	case multi != nil && fits(multi.Total):
		return multi, nil

	case single != nil || multi != nil:
		// Plans exist but none fits under the budget ceiling.
		return &domain.RecommendationPlan{
			Type:                 domain.PlanUnsatisfiable,
			Recommendations:      bestEffortRecommendations(baskets, request),
			StoreTotals:          storeTotals,
			PartialCatalogStores: partial,
		}, domain.ErrOverBudget

	default:
		// Multi-store disabled and no store covers the whole list. Name the
		// items blocking the best-covering store.
		return &domain.RecommendationPlan{
			Type:                 domain.PlanUnsatisfiable,
			Recommendations:      bestEffortRecommendations(baskets, request),
			StoreTotals:          storeTotals,
			PartialCatalogStores: partial,
			Uncovered:            blockingItems(baskets, request),
		}, domain.ErrUnsatisfiable
	}
}

// cheapestComplete returns the complete basket with the lowest total, ties
// broken by lexical store id, or nil when no basket is complete.
func cheapestComplete(baskets map[string]domain.StoreBasket) *singleCandidate {
	var best *singleCandidate
	for _, store := range sortedStores(baskets) {
		basket := baskets[store]
		if !basket.Complete {
			continue
		}
		if best == nil || basket.Total < best.basket.Total {
			best = &singleCandidate{store: store, basket: basket}
		}
	}
	return best
}

// multiStoreSplit picks, for each item independently, the cheapest suitable
// match across all stores regardless of per-store completeness. The result
// is always <= every complete basket's total. Ties go to the lexically
// smaller store id so the split is deterministic.
func (s *Selector) multiStoreSplit(
	baskets map[string]domain.StoreBasket,
	request *domain.ShoppingRequest,
) *domain.RecommendationPlan {
	plan := &domain.RecommendationPlan{Type: domain.PlanMultiStore}
	stores := sortedStores(baskets)

	for _, item := range request.Items {
		var best *domain.ItemMatch
		var bestStore string
		for _, store := range stores {
			match, ok := baskets[store].Matches[item.Name]
			if !ok || !match.Matched() {
				continue
			}
			if best == nil || match.Product.EffectivePrice() < best.Product.EffectivePrice() {
				m := match
				best = &m
				bestStore = store
			}
		}
		// uncovered items were rejected before this point
		if best == nil {
			continue
		}
		plan.Total += best.Product.EffectivePrice()
		plan.Recommendations = append(plan.Recommendations, domain.ItemRecommendation{
			Item:        item.Name,
			Store:       bestStore,
			ProductName: best.Product.Name,
			Price:       best.Product.EffectivePrice(),
			Link:        best.Product.Link,
			Suitability: best.Suitability,
		})
	}
	return plan
}

// singleStorePlan materializes the chosen basket in request item order.
func singleStorePlan(
	candidate *singleCandidate,
	request *domain.ShoppingRequest,
	storeTotals map[string]float64,
	partial []string,
) *domain.RecommendationPlan {
	plan := &domain.RecommendationPlan{
		Type:                 domain.PlanSingleStore,
		BestStore:            candidate.store,
		Total:                candidate.basket.Total,
		StoreTotals:          storeTotals,
		PartialCatalogStores: partial,
	}
	for _, item := range request.Items {
		match := candidate.basket.Matches[item.Name]
		plan.Recommendations = append(plan.Recommendations, domain.ItemRecommendation{
			Item:        item.Name,
			Store:       candidate.store,
			ProductName: match.Product.Name,
			Price:       match.Product.EffectivePrice(),
			Link:        match.Product.Link,
			Suitability: match.Suitability,
		})
	}
	return plan
}

// uncoveredItems returns, in request order, the items with no suitable match
// in any store.
func uncoveredItems(baskets map[string]domain.StoreBasket, request *domain.ShoppingRequest) []string {
	var uncovered []string
	for _, item := range request.Items {
		covered := false
		for _, basket := range baskets {
			if match, ok := basket.Matches[item.Name]; ok && match.Matched() {
				covered = true
				break
			}
		}
		if !covered {
			uncovered = append(uncovered, item.Name)
		}
	}
	return uncovered
}

// blockingItems names the items unmatched at the store that covers the most
// items (ties: cheaper total, then lexical id) — the items standing between
// the shopper and a single-store plan.
func blockingItems(baskets map[string]domain.StoreBasket, request *domain.ShoppingRequest) []string {
	var bestStore string
	bestCovered := -1
	for _, store := range sortedStores(baskets) {
		basket := baskets[store]
		covered := 0
		for _, match := range basket.Matches {
			if match.Matched() {
				covered++
			}
		}
		if covered > bestCovered || (covered == bestCovered && basket.Total < baskets[bestStore].Total) {
			bestStore = store
			bestCovered = covered
		}
	}
	if bestStore == "" {
		return nil
	}

	var blocking []string
	basket := baskets[bestStore]
	for _, item := range request.Items {
		if match, ok := basket.Matches[item.Name]; !ok || !match.Matched() {
			blocking = append(blocking, item.Name)
		}
	}
	return blocking
}

// bestEffortRecommendations reports, for transparency in failure outcomes,
// the cheapest match per item where one exists and the aggregated failure
// reason where none does.
func bestEffortRecommendations(
	baskets map[string]domain.StoreBasket,
	request *domain.ShoppingRequest,
) []domain.ItemRecommendation {
	stores := sortedStores(baskets)
	recs := make([]domain.ItemRecommendation, 0, len(request.Items))

	for _, item := range request.Items {
		var best *domain.ItemMatch
		var bestStore string
		sawDietary, sawBudget := false, false
		for _, store := range stores {
			match, ok := baskets[store].Matches[item.Name]
			if !ok {
				continue
			}
			switch match.Reason {
			case domain.FailDietaryMismatch:
				sawDietary = true
			case domain.FailOverBudget:
				sawBudget = true
			}
			if !match.Matched() {
				continue
			}
			if best == nil || match.Product.EffectivePrice() < best.Product.EffectivePrice() {
				m := match
				best = &m
				bestStore = store
			}
		}

		if best != nil {
			recs = append(recs, domain.ItemRecommendation{
				Item:        item.Name,
				Store:       bestStore,
				ProductName: best.Product.Name,
				Price:       best.Product.EffectivePrice(),
				Link:        best.Product.Link,
				Suitability: best.Suitability,
			})
			continue
		}

		reason := domain.FailNoRelevantProduct
		if sawDietary {
			reason = domain.FailDietaryMismatch
		} else if sawBudget {
			reason = domain.FailOverBudget
		}
		recs = append(recs, domain.ItemRecommendation{Item: item.Name, Reason: reason})
	}
	return recs
}

// partialCatalogStores lists, in lexical order, the stores whose catalogs
// lost malformed records.
func partialCatalogStores(baskets map[string]domain.StoreBasket) []string {
	var stores []string
	for _, store := range sortedStores(baskets) {
		if baskets[store].PartialCatalog {
			stores = append(stores, store)
		}
	}
	return stores
}

// sortedStores returns basket store ids in lexical order for deterministic
// iteration.
func sortedStores(baskets map[string]domain.StoreBasket) []string {
	stores := make([]string, 0, len(baskets))
	for store := range baskets {
		stores = append(stores, store)
	}
	sort.Strings(stores)
	return stores
}
