package catalog

import "github.com/cartwise/backend/internal/domain"

// catalogResponse is the upstream catalog service's response envelope.
type catalogResponse struct {
	Store    string            `json:"store"`
	Products []upstreamProduct `json:"products"`
}

// upstreamProduct is one product listing as delivered by the acquisition
// service. Field names follow its wire format, not ours.
type upstreamProduct struct {
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"sale_price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	AllergenInfo string   `json:"allergen_info,omitempty"`
	Link         string   `json:"link,omitempty"`
	UnitSize     string   `json:"unit_size,omitempty"`
}

// mapToProductRecords converts upstream listings to domain records. Records
// are passed through even when malformed; the engine excludes them from
// matching and counts them toward the store's partial-catalog flag, which is
// a decision the infrastructure layer should not preempt.
func mapToProductRecords(store string, products []upstreamProduct) []domain.ProductRecord {
	records := make([]domain.ProductRecord, 0, len(products))
	for _, p := range products {
		records = append(records, domain.ProductRecord{
			Store:        store,
			Name:         p.Title,
			Price:        p.Price,
			SalePrice:    p.SalePrice,
			Currency:     p.Currency,
			Ingredients:  p.Ingredients,
			Labels:       p.Labels,
			AllergenInfo: p.AllergenInfo,
			Link:         p.Link,
			Size:         p.UnitSize,
		})
	}
	return records
}
