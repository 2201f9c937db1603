package domain

import "strings"

// ProductRecord is a normalized product listing from one store's catalog.
// Produced by an external acquisition layer; read-only input to the engine.
type ProductRecord struct {
	Store        string   `json:"store"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"salePrice,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	AllergenInfo string   `json:"allergenInfo,omitempty"`
	Link         string   `json:"link,omitempty"`
	Size         string   `json:"size,omitempty"`
}

// EffectivePrice returns the price a shopper would actually pay,
// taking an active sale into account.
func (p *ProductRecord) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice > 0 && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// HasLabel reports whether the product declares the given label,
// case-insensitively.
func (p *ProductRecord) HasLabel(label string) bool {
	for _, l := range p.Labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// Valid reports whether the record carries the minimum data needed for
// matching. Invalid records are excluded from matching and counted toward
// the store's incomplete-catalog flag rather than causing an error.
func (p *ProductRecord) Valid() bool {
	return p.Name != "" && p.Price > 0
}
