package ports

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// FulfillmentTokenGenerator produces the token handed to the accepting store,
// used downstream to verify the physical handover.
type FulfillmentTokenGenerator interface {
	Generate(orderID kernel.UUID) (string, error)
}
