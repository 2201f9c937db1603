package domain

// PlanType identifies the shape of the chosen purchasing strategy.
type PlanType string

const (
	PlanSingleStore   PlanType = "single_store"
	PlanMultiStore    PlanType = "multi_store"
	PlanUnsatisfiable PlanType = "unsatisfiable"
)

// ItemRecommendation is the final per-item verdict: the chosen store and
// product, or an explicit miss with its reason.
type ItemRecommendation struct {
	Item        string             `json:"item"`
	Store       string             `json:"store,omitempty"`
	ProductName string             `json:"productName,omitempty"`
	Price       float64            `json:"price,omitempty"`
	Link        string             `json:"link,omitempty"`
	Suitability *SuitabilityResult `json:"dietaryInfo,omitempty"`
	Reason      MatchFailReason    `json:"reason,omitempty"`
}

// RecommendationPlan is the engine's final answer. Recommendations preserve
// the request's item order regardless of how the computation was scheduled.
// StoreTotals covers every evaluated store, not only the winner.
type RecommendationPlan struct {
	Type            PlanType             `json:"planType"`
	BestStore       string               `json:"bestStore,omitempty"`
	Total           float64              `json:"totalCost"`
	Recommendations []ItemRecommendation `json:"recommendations"`
	StoreTotals     map[string]float64   `json:"storeTotals"`
	// PartialCatalogStores lists stores whose catalogs had malformed records
	// dropped; their totals carry reduced confidence.
	PartialCatalogStores []string `json:"partialCatalogStores,omitempty"`
	// Uncovered lists items with no suitable match in any store. Non-empty
	// only for unsatisfiable plans.
	Uncovered []string `json:"uncoveredItems,omitempty"`
}

// StoreInfo describes a known store the host can scope requests to.
type StoreInfo struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}
