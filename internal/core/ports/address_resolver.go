package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// Address is the resolved form of a delivery address: validated coordinates
// plus the human-readable line used in outbound notifications.
type Address struct {
	Location    kernel.GeoPoint
	AddressLine string
}

// AddressResolver resolves a delivery address identifier to coordinates.
// Returns errs.ErrObjectNotFound when the address does not exist or has been
// removed; the caller aborts with no state change in that case.
type AddressResolver interface {
	Resolve(ctx context.Context, addressID kernel.UUID) (Address, error)
}
