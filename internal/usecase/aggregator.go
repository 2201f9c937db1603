package usecase

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/cartwise/backend/internal/domain"
)

// Aggregator builds per-store baskets for a shopping request. Stores are
// independent, so each one is matched on its own goroutine; every worker
// writes only its own slot of the result slice and the merge happens after
// the join, keeping the hot path lock-free.
type Aggregator struct {
	matcher            *Matcher
	enableDebugLogging bool
}

// NewAggregator creates an aggregator around the given matcher
func NewAggregator(matcher *Matcher, enableDebugLogging bool) *Aggregator {
	return &Aggregator{matcher: matcher, enableDebugLogging: enableDebugLogging}
}

// Aggregate matches every requested item against every store's catalog and
// returns one basket per store. Per-item budget ceilings are enforced here:
// a match over the ceiling becomes an explicit over_budget miss. Malformed
// catalog records are dropped and flag the basket as partial instead of
// failing the request.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	request *domain.ShoppingRequest,
	catalogs map[string][]domain.ProductRecord,
) map[string]domain.StoreBasket {
	stores := make([]string, 0, len(catalogs))
	for store := range catalogs {
		stores = append(stores, store)
	}
	sort.Strings(stores)

	baskets := make([]domain.StoreBasket, len(stores))
	var wg sync.WaitGroup
	for i, store := range stores {
		wg.Add(1)
		go func(slot int, store string) {
			defer wg.Done()
			baskets[slot] = a.buildBasket(ctx, request, store, catalogs[store])
		}(i, store)
	}
	wg.Wait()

	result := make(map[string]domain.StoreBasket, len(stores))
	for i, store := range stores {
		result[store] = baskets[i]
	}
	return result
}

// buildBasket matches all requested items against one store's catalog.
func (a *Aggregator) buildBasket(
	ctx context.Context,
	request *domain.ShoppingRequest,
	store string,
	catalog []domain.ProductRecord,
) domain.StoreBasket {
	clean, dropped := filterValid(catalog)

	basket := domain.StoreBasket{
		Store:          store,
		Matches:        make(map[string]domain.ItemMatch, len(request.Items)),
		Complete:       true,
		PartialCatalog: dropped > 0 || len(clean) == 0,
	}

	if a.enableDebugLogging && dropped > 0 {
		log.Printf("[AGGREGATE] store=%q dropped %d malformed record(s)", store, dropped)
	}

	for _, item := range request.Items {
		select {
		case <-ctx.Done():
			// abandoned by the caller; remaining items are left unrecorded
			// rather than tagged with a reason they never earned
			basket.Complete = false
			continue
		default:
		}

		match := a.matcher.Match(item.Name, request.RestrictionsFor(item), clean)

		if match.Matched() && request.PerItemBudget != nil &&
			match.Product.EffectivePrice() > *request.PerItemBudget {
			match = domain.ItemMatch{Item: item.Name, Reason: domain.FailOverBudget}
		}

		if match.Matched() {
			basket.Total += match.Product.EffectivePrice()
		} else {
			basket.Complete = false
		}
		basket.Matches[item.Name] = match
	}

	return basket
}

// filterValid drops malformed records (missing name or price) and reports
// how many were dropped.
func filterValid(catalog []domain.ProductRecord) ([]domain.ProductRecord, int) {
	clean := make([]domain.ProductRecord, 0, len(catalog))
	for _, record := range catalog {
		if record.Valid() {
			clean = append(clean, record)
		}
	}
	return clean, len(catalog) - len(clean)
}
