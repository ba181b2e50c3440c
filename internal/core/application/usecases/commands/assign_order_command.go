package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand or NewAssignNextPendingOrderCommand constructor",
)

// AssignOrderCommand represents a request to route an order to its first
// fulfillment store. It targets either a specific order (HTTP path) or the
// oldest pending order (assignment job path).
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment request: %w", err)
//	}
//
//	handler := NewAssignOrderCommandHandler(uowFactory, stores, addresses, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to assign order: %w", err)
//	}
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign one specific order.
// Returns an error if the order ID is invalid.
func NewAssignOrderCommand(orderID kernel.UUID) (AssignOrderCommand, error) {
	assignCommand := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := assignCommand.setOrderID(orderID); err != nil {
		return AssignOrderCommand{}, err
	}

	return assignCommand, nil
}

// NewAssignNextPendingOrderCommand creates a command to assign the oldest
// order still awaiting its first store. Used by the assignment job.
func NewAssignNextPendingOrderCommand() AssignOrderCommand {
	return AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through a constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the targeted order's identifier, or nil when the command
// targets the oldest pending order.
func (c AssignOrderCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = &orderID
	return nil
}
