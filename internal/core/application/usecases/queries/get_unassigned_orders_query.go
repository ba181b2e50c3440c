package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
		"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
	)
)

// GetUnassignedOrdersQuery retrieves all orders still waiting for their first
// store assignment. Used by operators to monitor the routing backlog.
type GetUnassignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates a query to retrieve pending orders.
// This is a parameterless query that fetches all orders in pending status.
func NewGetUnassignedOrdersQuery() GetUnassignedOrdersQuery {
	return GetUnassignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnassignedOrdersQueryIsNotConstructed if validation fails.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

// GetUnassignedOrdersQueryResponse represents one order awaiting assignment.
type GetUnassignedOrdersQueryResponse struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	AddressID     kernel.UUID
	PaymentMethod string
}
