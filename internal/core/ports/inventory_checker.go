package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryChecker answers stock-feasibility questions for the recommendation
// fallback and the downstream confirmation flow.
type InventoryChecker interface {
	// CheckStockAtStore reports whether the store holds at least quantity
	// units of the product color variant.
	CheckStockAtStore(ctx context.Context, productColorID, storeID kernel.UUID, quantity int) (bool, error)

	// HasSufficientGlobalStock reports whether quantity units exist across
	// all stores combined. Used by the order confirmation flow.
	HasSufficientGlobalStock(ctx context.Context, productColorID kernel.UUID, quantity int) (bool, error)
}
