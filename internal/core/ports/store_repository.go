package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
)

// StoreRepository defines the read contract for fulfillment stores.
// The routing subsystem never mutates stores; Add exists for provisioning
// and test setup.
type StoreRepository interface {
	// Add persists a new store.
	Add(ctx context.Context, aggregate *store.Store) error

	// Get retrieves a store by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such store exists.
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// GetAll retrieves every store known to the system.
	// The store fleet is small enough that ranking loads it wholesale.
	GetAll(ctx context.Context) ([]*store.Store, error)
}
