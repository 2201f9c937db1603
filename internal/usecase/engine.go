package usecase

import (
	"context"
	"log"

	"github.com/cartwise/backend/internal/domain"
)

// EngineConfig holds configuration for the decision engine
type EngineConfig struct {
	MultiStoreEnabled          bool
	AssumeSatisfiedWhenUnknown []string
	MinRelevance               float64
	EnableFuzzyMatching        bool
	FuzzyEditDistance          int
	EnableDebugLogging         bool
}

// Engine is the decision facade: aggregate per-store baskets, then select
// the purchasing plan. Pure orchestration over already-resolved inputs; it
// performs no I/O and holds no state between invocations.
type Engine struct {
	aggregator         *Aggregator
	selector           *Selector
	enableDebugLogging bool
}

// NewEngine wires the evaluator, matcher, aggregator, and selector from one
// configuration.
func NewEngine(config EngineConfig) *Engine {
	dietary := NewDietaryEvaluator(config.AssumeSatisfiedWhenUnknown)
	matcher := NewMatcher(dietary, MatcherConfig{
		MinRelevance:        config.MinRelevance,
		EnableFuzzyMatching: config.EnableFuzzyMatching,
		FuzzyEditDistance:   config.FuzzyEditDistance,
		EnableDebugLogging:  config.EnableDebugLogging,
	})
	return &Engine{
		aggregator:         NewAggregator(matcher, config.EnableDebugLogging),
		selector:           NewSelector(SelectorConfig{MultiStoreEnabled: config.MultiStoreEnabled, EnableDebugLogging: config.EnableDebugLogging}),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Recommend produces the purchasing plan for a request against the given
// per-store catalogs. The output's per-item order follows the request, and
// its store cost summary covers every evaluated store, winners and losers
// alike. A non-nil plan is returned alongside failure errors so the host can
// surface the cost summary and uncovered items.
func (e *Engine) Recommend(
	ctx context.Context,
	request *domain.ShoppingRequest,
	catalogs map[string][]domain.ProductRecord,
) (*domain.RecommendationPlan, error) {
	if request == nil || len(request.Items) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	for _, item := range request.Items {
		if item.Name == "" {
			return nil, domain.ErrInvalidRequest
		}
	}

	scoped := make(map[string][]domain.ProductRecord, len(catalogs))
	for store, catalog := range catalogs {
		if request.InScope(store) {
			scoped[store] = catalog
		}
	}

	if e.enableDebugLogging {
		log.Printf("[ENGINE] recommend: %d item(s) across %d store(s)", len(request.Items), len(scoped))
	}

	baskets := e.aggregator.Aggregate(ctx, request, scoped)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.selector.Select(baskets, request)
}
