package ports

import "context"

// Event topics identifying order routing transitions for downstream consumers.
const (
	// TopicStoreAssigned is emitted whenever an order is routed to a store,
	// on first assignment and on every reassignment.
	TopicStoreAssigned = "store-assigned"

	// TopicOrderCreated is emitted when a pay-on-delivery order is accepted
	// by a store manager.
	TopicOrderCreated = "order-created"

	// TopicOrderCancelled is emitted when an order leaves the routing flow
	// without a store.
	TopicOrderCancelled = "order-cancelled"
)

// EventPublisher is the outbound notification port. Publishing is
// fire-and-forget with at-least-once semantics assumed by downstream
// consumers: every event carries the order ID so consumers can deduplicate.
//
// Errors are returned so the caller can log them, but callers never let a
// publish failure affect order state or fail the triggering operation.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// StoreAssignedEvent notifies downstream systems that an order was routed to
// a store.
type StoreAssignedEvent struct {
	OrderID string `json:"order_id"`
	StoreID string `json:"store_id"`
}

// OrderCancelledEvent notifies downstream systems that an order left the
// routing flow.
type OrderCancelledEvent struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// OrderCreatedEvent notifies downstream systems that a pay-on-delivery order
// was accepted, with enough customer and line detail for formatting.
type OrderCreatedEvent struct {
	OrderID       string             `json:"order_id"`
	StoreID       string             `json:"store_id"`
	CustomerEmail string             `json:"customer_email"`
	CustomerName  string             `json:"customer_name"`
	AddressLine   string             `json:"address_line"`
	Lines         []OrderCreatedLine `json:"lines"`
}

// OrderCreatedLine is one enriched order line of an OrderCreatedEvent.
type OrderCreatedLine struct {
	ProductName string `json:"product_name"`
	ColorName   string `json:"color_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}
