package domain

// RequestItem is a single requested grocery item. Restrictions listed here
// apply on top of the request-wide restrictions for this item only.
type RequestItem struct {
	Name         string   `json:"name" binding:"required"`
	Restrictions []string `json:"dietaryRestrictions,omitempty"`
}

// ShoppingRequest is the structured form of a shopping list, produced by an
// upstream parser. Immutable once constructed; the engine never modifies it.
type ShoppingRequest struct {
	Items         []RequestItem `json:"items" binding:"required"`
	Restrictions  []string      `json:"dietaryRestrictions,omitempty"`
	TotalBudget   *float64      `json:"totalBudget,omitempty"`
	PerItemBudget *float64      `json:"perItemBudget,omitempty"`
	Stores        []string      `json:"stores,omitempty"` // restrict to these store ids; empty = all
}

// RestrictionsFor returns the combined restriction set for one item:
// the request-wide restrictions plus the item's own, deduplicated,
// preserving first-seen order so evaluation stays deterministic.
func (r *ShoppingRequest) RestrictionsFor(item RequestItem) []string {
	seen := make(map[string]bool, len(r.Restrictions)+len(item.Restrictions))
	var combined []string
	for _, set := range [][]string{r.Restrictions, item.Restrictions} {
		for _, restriction := range set {
			if restriction == "" || seen[restriction] {
				continue
			}
			seen[restriction] = true
			combined = append(combined, restriction)
		}
	}
	return combined
}

// InScope reports whether a store id passes the request's store filter.
func (r *ShoppingRequest) InScope(store string) bool {
	if len(r.Stores) == 0 {
		return true
	}
	for _, s := range r.Stores {
		if s == store {
			return true
		}
	}
	return false
}
