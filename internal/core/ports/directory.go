package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// User is the customer detail needed to enrich outbound notifications.
type User struct {
	Email    string
	FullName string
}

// ProductColor is the product detail needed to enrich outbound notifications.
type ProductColor struct {
	ProductName string
	ColorName   string
}

// Directory resolves customer and product reference data for notification
// payloads. GetProductColors is batched: implementations resolve all
// requested variants in one round trip instead of once per order line.
type Directory interface {
	GetUser(ctx context.Context, userID kernel.UUID) (User, error)
	GetProductColors(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ProductColor, error)
}
