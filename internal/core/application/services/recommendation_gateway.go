// Package services contains application services that orchestrate domain
// services and outbound ports without owning a transaction themselves.
package services

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	domainservices "fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/observability"
)

// fallbackCandidateLimit is how many nearest stores the deterministic
// fallback considers before giving up.
const fallbackCandidateLimit = 5

// RecommendationGateway picks a reassignment target for a rejected order.
//
// It asks the AI recommender first and trusts a non-nil answer without stock
// re-validation. When the AI call fails or yields nothing, it falls back to
// the nearest stores (excluding the ones that already rejected the order) and
// returns the closest one that can cover every order line from stock.
//
// A nil result with a nil error is the expected "no suitable store" outcome,
// which the caller interprets as a cancellation. It is data, not a failure.
type RecommendationGateway struct {
	recommender ports.AIRecommender
	storeRepo   ports.StoreRepository
	inventory   ports.InventoryChecker
	ranker      domainservices.StoreRanker
	logger      *slog.Logger
}

// NewRecommendationGateway creates a gateway over the AI recommender with the
// deterministic geographic/stock fallback.
func NewRecommendationGateway(
	recommender ports.AIRecommender,
	storeRepo ports.StoreRepository,
	inventory ports.InventoryChecker,
	ranker domainservices.StoreRanker,
	logger *slog.Logger,
) RecommendationGateway {
	return RecommendationGateway{
		recommender: recommender,
		storeRepo:   storeRepo,
		inventory:   inventory,
		ranker:      ranker,
		logger:      logger.With("component", "recommendation_gateway"),
	}
}

// Recommend returns the store the order should be reassigned to, or nil when
// no suitable store exists. Errors are returned only for failures the
// fallback itself cannot absorb (e.g. the store directory being unreadable).
func (g RecommendationGateway) Recommend(
	ctx context.Context,
	request ports.RecommendationRequest,
) (*kernel.UUID, error) {
	recommendation, err := g.recommender.RecommendStore(ctx, request)
	if err != nil {
		g.logger.WarnContext(ctx, "AI recommendation unavailable, using fallback",
			"order_id", request.OrderID.String(), "error", err)
	} else if recommendation != nil {
		// The AI service has already checked feasibility; no re-validation.
		storeID := recommendation.StoreID
		g.logger.InfoContext(ctx, "AI recommendation accepted",
			"order_id", request.OrderID.String(),
			"store_id", storeID.String(),
			"confidence", recommendation.Confidence,
			"score", recommendation.Score)
		return &storeID, nil
	}

	return g.fallback(ctx, request)
}

// fallback ranks the nearest eligible stores and returns the first one that
// passes the stock feasibility check for every order line.
func (g RecommendationGateway) fallback(
	ctx context.Context,
	request ports.RecommendationRequest,
) (*kernel.UUID, error) {
	stores, err := g.storeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	eligible := excludeStores(stores, request.ExcludedStoreIDs)

	candidates, err := g.ranker.Rank(request.Origin, eligible, fallbackCandidateLimit)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if g.canFulfillAllLines(ctx, candidate.StoreID, request.Lines) {
			storeID := candidate.StoreID
			observability.FallbackRecommendations.Inc()
			g.logger.InfoContext(ctx, "fallback recommendation found",
				"order_id", request.OrderID.String(),
				"store_id", storeID.String(),
				"distance_km", candidate.DistanceKm)
			return &storeID, nil
		}
	}

	g.logger.InfoContext(ctx, "no suitable store in fallback",
		"order_id", request.OrderID.String(), "candidates", len(candidates))
	return nil, nil
}

// canFulfillAllLines checks stock feasibility for every line, all-or-nothing.
// A failed stock check merely disqualifies the candidate.
func (g RecommendationGateway) canFulfillAllLines(
	ctx context.Context,
	storeID kernel.UUID,
	lines []order.Line,
) bool {
	for _, line := range lines {
		ok, err := g.inventory.CheckStockAtStore(ctx, line.ProductColorID(), storeID, line.Quantity())
		if err != nil {
			g.logger.WarnContext(ctx, "stock check failed, excluding candidate",
				"store_id", storeID.String(),
				"product_color_id", line.ProductColorID().String(),
				"error", err)
			return false
		}
		if !ok {
			return false
		}
	}

	return true
}

// excludeStores filters out every store whose ID appears in excludedIDs.
func excludeStores(stores []*store.Store, excludedIDs []kernel.UUID) []*store.Store {
	if len(excludedIDs) == 0 {
		return stores
	}

	eligible := make([]*store.Store, 0, len(stores))
	for _, s := range stores {
		excluded := false
		for _, id := range excludedIDs {
			if s.ID().IsEqual(id) {
				excluded = true
				break
			}
		}
		if !excluded {
			eligible = append(eligible, s)
		}
	}

	return eligible
}
