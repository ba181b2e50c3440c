package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// RecommendationRequest carries everything the AI recommender needs to pick a
// reassignment target: the order identity, the stores that must not be
// suggested again, the order lines, and the customer's coordinates.
type RecommendationRequest struct {
	OrderID          kernel.UUID
	ExcludedStoreIDs []kernel.UUID
	Lines            []order.Line
	Origin           kernel.GeoPoint
}

// Recommendation is a non-empty answer from the AI recommender. The service
// is trusted to have checked stock feasibility itself, so the recommended
// store is used without re-validation.
type Recommendation struct {
	StoreID    kernel.UUID
	Confidence float64
	Score      float64
}

// AIRecommender wraps the external AI recommendation service.
//
// A nil recommendation with a nil error means the service answered but had no
// suggestion; an error means the call itself failed. Callers treat both as a
// signal to use the deterministic fallback.
type AIRecommender interface {
	RecommendStore(ctx context.Context, request RecommendationRequest) (*Recommendation, error)
}
