package domain

// MatchFailReason explains why an item could not be matched at a store.
type MatchFailReason string

const (
	// FailNone means the item was matched.
	FailNone MatchFailReason = ""
	// FailNoRelevantProduct means nothing in the catalog resembled the item name.
	FailNoRelevantProduct MatchFailReason = "no_relevant_product"
	// FailDietaryMismatch means relevant candidates existed but none passed
	// the dietary filter.
	FailDietaryMismatch MatchFailReason = "dietary_mismatch"
	// FailOverBudget means the best match exceeded the per-item budget ceiling.
	FailOverBudget MatchFailReason = "over_budget"
)

// ItemMatch records the outcome of matching one requested item against one
// store's catalog. Product is nil exactly when Reason is non-empty; an
// unmatched item is always explicit, never silently dropped.
type ItemMatch struct {
	Item        string             `json:"item"`
	Product     *ProductRecord     `json:"product,omitempty"`
	Suitability *SuitabilityResult `json:"suitability,omitempty"`
	Reason      MatchFailReason    `json:"reason,omitempty"`
}

// Matched reports whether a product was chosen for this item. Value
// receiver so the check works directly on map entries.
func (m ItemMatch) Matched() bool {
	return m.Product != nil
}

// StoreBasket is the per-store view of a shopping request: one ItemMatch per
// requested item, the derived total over matched items, and a completeness
// flag. Incomplete baskets are never chosen as a single-store plan.
type StoreBasket struct {
	Store    string               `json:"store"`
	Matches  map[string]ItemMatch `json:"matches"`
	Total    float64              `json:"total"`
	Complete bool                 `json:"complete"`
	// PartialCatalog is set when malformed records were dropped from this
	// store's catalog, so the basket reflects reduced confidence rather than
	// a definitive "store has nothing" answer.
	PartialCatalog bool `json:"partialCatalog,omitempty"`
}
