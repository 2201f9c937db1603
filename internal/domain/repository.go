package domain

import "context"

// CatalogCache is the injected cache for normalized store catalogs. Entries
// expire after the implementation's TTL; readers may see a stale but
// internally consistent snapshot. Invalidation is explicit.
type CatalogCache interface {
	Get(ctx context.Context, store string) ([]ProductRecord, error)
	Set(ctx context.Context, store string, catalog []ProductRecord) error
	Invalidate(ctx context.Context, store string) error
}

// CatalogClient defines the interface for fetching normalized product
// catalogs from the upstream acquisition service. The engine itself never
// calls this; the host resolves catalogs before invoking Recommend.
type CatalogClient interface {
	FetchCatalog(ctx context.Context, store string, items []string) ([]ProductRecord, error)
}
