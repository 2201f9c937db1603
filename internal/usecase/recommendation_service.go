package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/cartwise/backend/internal/domain"
)

// RecommendationService is the host-facing entry point: it resolves catalogs
// for the stores in scope (cache first, upstream fetch on miss) and hands the
// already-resolved inputs to the decision engine.
// Flow: scope stores -> resolve catalogs -> engine.Recommend
type RecommendationService struct {
	cache         domain.CatalogCache
	catalogClient domain.CatalogClient
	engine        *Engine
	knownStores   []domain.StoreInfo
	debug         bool
}

// NewRecommendationService creates a recommendation service with dependencies
func NewRecommendationService(
	cache domain.CatalogCache,
	catalogClient domain.CatalogClient,
	engine *Engine,
	knownStores []domain.StoreInfo,
	debug bool,
) *RecommendationService {
	return &RecommendationService{
		cache:         cache,
		catalogClient: catalogClient,
		engine:        engine,
		knownStores:   knownStores,
		debug:         debug,
	}
}

// KnownStores returns the configured store roster
func (s *RecommendationService) KnownStores() []domain.StoreInfo {
	return s.knownStores
}

// Recommend resolves catalogs for the request and runs the decision engine.
// A store whose catalog cannot be fetched is omitted from the mapping rather
// than failing the request; the engine tolerates partial mappings.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	request *domain.ShoppingRequest,
) (*domain.RecommendationPlan, error) {
	if request == nil || len(request.Items) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	stores := s.storesInScope(request)
	items := make([]string, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, item.Name)
	}

	catalogs := s.resolveCatalogs(ctx, stores, items)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.engine.Recommend(ctx, request, catalogs)
}

// storesInScope applies the request's store filter to the known roster.
func (s *RecommendationService) storesInScope(request *domain.ShoppingRequest) []string {
	var stores []string
	for _, store := range s.knownStores {
		if request.InScope(store.Name) {
			stores = append(stores, store.Name)
		}
	}
	return stores
}

// resolveCatalogs fetches each store's catalog concurrently, preferring
// cached snapshots. Fetches are independent per store; one store's failure
// never blocks the rest.
func (s *RecommendationService) resolveCatalogs(
	ctx context.Context,
	stores []string,
	items []string,
) map[string][]domain.ProductRecord {
	type fetched struct {
		store   string
		catalog []domain.ProductRecord
		ok      bool
	}

	results := make([]fetched, len(stores))
	var wg sync.WaitGroup
	for i, store := range stores {
		wg.Add(1)
		go func(slot int, store string) {
			defer wg.Done()

			if catalog, err := s.cache.Get(ctx, store); err == nil {
				results[slot] = fetched{store: store, catalog: catalog, ok: true}
				return
			}

			catalog, err := s.catalogClient.FetchCatalog(ctx, store, items)
			if err != nil {
				if s.debug {
					log.Printf("[SERVICE] catalog fetch failed for %q: %v", store, err)
				}
				return
			}
			if err := s.cache.Set(ctx, store, catalog); err != nil && s.debug {
				log.Printf("[SERVICE] catalog cache set failed for %q: %v", store, err)
			}
			results[slot] = fetched{store: store, catalog: catalog, ok: true}
		}(i, store)
	}
	wg.Wait()

	catalogs := make(map[string][]domain.ProductRecord, len(stores))
	for _, r := range results {
		if r.ok {
			catalogs[r.store] = r.catalog
		}
	}
	return catalogs
}
