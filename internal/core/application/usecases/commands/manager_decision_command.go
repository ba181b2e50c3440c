package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrManagerDecisionCommandIsNotConstructed = errors.New(
		"ManagerDecisionCommand must be created via NewManagerDecisionCommand constructor",
	)
	ErrDecisionIsRequired = errors.New("decision is required")
)

// Decision is the store manager's verdict on an assigned order.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ManagerDecisionCommand represents a store manager accepting or rejecting an
// order currently assigned to their store.
//
// Example:
//
//	cmd, err := NewManagerDecisionCommand(orderID, storeID, DecisionReject, "out of stock")
//	if err != nil {
//	    return fmt.Errorf("invalid decision request: %w", err)
//	}
//
//	handler := NewManagerDecisionCommandHandler(deps...)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to apply decision: %w", err)
//	}
type ManagerDecisionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	storeID  kernel.UUID
	decision Decision
	reason   string

	guard guard.ConstructorGuard
}

// NewManagerDecisionCommand creates a manager decision command.
// Validates the order and store identifiers and requires a non-empty
// decision; the decision's meaning is resolved by the handler, which treats
// anything other than accept or reject as an invalid operation.
func NewManagerDecisionCommand(
	orderID kernel.UUID,
	storeID kernel.UUID,
	decision Decision,
	reason string,
) (ManagerDecisionCommand, error) {
	decisionCommand := ManagerDecisionCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		decisionCommand.setOrderID(orderID),
		decisionCommand.setStoreID(storeID),
		decisionCommand.setDecision(decision),
	); err != nil {
		return ManagerDecisionCommand{}, err
	}

	return decisionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrManagerDecisionCommandIsNotConstructed if validation fails.
func (c ManagerDecisionCommand) Validate() error {
	return c.guard.Validate(ErrManagerDecisionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being decided on.
func (c ManagerDecisionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StoreID returns the identifier of the deciding manager's store.
func (c ManagerDecisionCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Decision returns the manager's verdict.
func (c ManagerDecisionCommand) Decision() Decision {
	return c.decision
}

// Reason returns the manager's free-text explanation. May be empty.
func (c ManagerDecisionCommand) Reason() string {
	return c.reason
}

func (c *ManagerDecisionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ManagerDecisionCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *ManagerDecisionCommand) setDecision(decision Decision) error {
	if decision == "" {
		return ErrDecisionIsRequired
	}

	c.decision = decision
	return nil
}
