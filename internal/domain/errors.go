package domain

import "errors"

var (
	// ErrNoRelevantProduct is returned when an item name matched nothing in a catalog
	ErrNoRelevantProduct = errors.New("no relevant product found in catalog")

	// ErrDietaryMismatch is returned when candidates existed but none passed dietary filtering
	ErrDietaryMismatch = errors.New("no candidate satisfies the dietary restrictions")

	// ErrOverBudget is returned when the best available plan exceeds a budget ceiling
	ErrOverBudget = errors.New("best available plan exceeds budget ceiling")

	// ErrUnsatisfiable is returned when at least one item has no suitable match in any store
	ErrUnsatisfiable = errors.New("request unsatisfiable: item has no suitable match in any store")

	// ErrIncompleteCatalog is returned when a store's catalog was missing or partial
	ErrIncompleteCatalog = errors.New("store catalog missing or partial")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogAPIFailure is returned when the upstream catalog service request fails
	ErrCatalogAPIFailure = errors.New("catalog service request failed")
)
