package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cartwise/backend/internal/domain"
)

// RecommendationService is the usecase surface the handlers need
type RecommendationService interface {
	Recommend(ctx context.Context, request *domain.ShoppingRequest) (*domain.RecommendationPlan, error)
	KnownStores() []domain.StoreInfo
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service RecommendationService
}

// NewHandler creates a new HTTP handler
func NewHandler(service RecommendationService) *Handler {
	return &Handler{service: service}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cartwise-backend",
		"version": "1.0.0",
	})
}

// ListStores returns the known store roster with location metadata
func (h *Handler) ListStores(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation service not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": h.service.KnownStores()})
}

// Recommend handles shopping recommendation requests
func (h *Handler) Recommend(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation service not configured"})
		return
	}

	var request domain.ShoppingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	plan, err := h.service.Recommend(c.Request.Context(), &request)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, planResponse(plan))

	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUnsatisfiable), errors.Is(err, domain.ErrOverBudget):
		// Failure outcomes still carry the cost summary for transparency
		body := planResponse(plan)
		body["error"] = err.Error()
		c.JSON(http.StatusUnprocessableEntity, body)

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute recommendation"})
	}
}

// planResponse shapes a plan into the API envelope
func planResponse(plan *domain.RecommendationPlan) gin.H {
	if plan == nil {
		return gin.H{}
	}

	recommendations := make(map[string]gin.H, len(plan.Recommendations))
	for _, rec := range plan.Recommendations {
		entry := gin.H{}
		if rec.Reason != domain.FailNone {
			entry["reason"] = rec.Reason
		} else {
			entry["store"] = rec.Store
			entry["product_name"] = rec.ProductName
			entry["price"] = rec.Price
			if rec.Link != "" {
				entry["link"] = rec.Link
			}
		}
		if rec.Suitability != nil {
			entry["is_suitable"] = rec.Suitability.Suitable
			entry["dietary_info"] = rec.Suitability
		}
		recommendations[rec.Item] = entry
	}

	body := gin.H{
		"plan_type":       plan.Type,
		"recommendations": recommendations,
		"total_cost":      plan.StoreTotals,
	}
	if plan.BestStore != "" {
		body["best_store"] = plan.BestStore
	}
	if plan.Type != domain.PlanUnsatisfiable {
		body["plan_total"] = plan.Total
	}
	if len(plan.PartialCatalogStores) > 0 {
		body["partial_catalogs"] = plan.PartialCatalogStores
	}
	if len(plan.Uncovered) > 0 {
		body["uncovered_items"] = plan.Uncovered
	}
	return body
}
