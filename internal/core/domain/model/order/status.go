package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order inside the fulfillment
// routing subsystem. It implements a state machine with defined transitions
// to ensure orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> AssignedToStore ──┬──> ManagerAccepted (terminal)
//	   │              ▲           │
//	   │              │           └──> ManagerRejected ──┬──> AssignedToStore
//	   │              └──────────────────────────────────┘
//	   └──────────────────────> Cancelled (terminal) <───┘
//
// ManagerAccepted hands the order over to the downstream confirmation flow;
// Cancelled absorbs every further transition attempt.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	// Orders in this status are waiting for their first store assignment.
	Pending

	// AssignedToStore indicates the order has been routed to a fulfillment
	// store whose manager has not decided yet.
	AssignedToStore

	// ManagerAccepted indicates the store manager accepted the order.
	// Terminal for this subsystem; downstream fulfillment takes over.
	ManagerAccepted

	// ManagerRejected indicates the store manager rejected the order.
	// Always followed by a reassignment or a cancellation in the same
	// operation; an order is never left resting in this status.
	ManagerRejected

	// Cancelled indicates the order left the fulfillment flow permanently,
	// either after exhausting the rejection budget or for lack of a
	// suitable store. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		Pending:         "Pending",
		AssignedToStore: "AssignedToStore",
		ManagerAccepted: "ManagerAccepted",
		ManagerRejected: "ManagerRejected",
		Cancelled:       "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:         "Pending",
		AssignedToStore: "AssignedToStore",
		ManagerAccepted: "ManagerAccepted",
		ManagerRejected: "ManagerRejected",
		Cancelled:       "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other unmapped values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is legal from this status.
func (s Status) IsTerminal() bool {
	return s == ManagerAccepted || s == Cancelled
}

// AssignToStore transitions the status to AssignedToStore.
//
// Valid transitions:
//   - Pending -> AssignedToStore (first assignment)
//   - ManagerRejected -> AssignedToStore (reassignment after rejection)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) AssignToStore() (Status, error) {
	if s != Pending && s != ManagerRejected {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign a store", s.String()),
		)
	}

	return AssignedToStore, nil
}

// Accept transitions the status to ManagerAccepted.
// Only valid from AssignedToStore.
func (s Status) Accept() (Status, error) {
	if s != AssignedToStore {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}

	return ManagerAccepted, nil
}

// Reject transitions the status to ManagerRejected.
// Only valid from AssignedToStore.
func (s Status) Reject() (Status, error) {
	if s != AssignedToStore {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}

	return ManagerRejected, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid from every non-terminal status: a Pending order can be cancelled
// before its first assignment, and a rejected order is cancelled when the
// rejection budget is exhausted or no suitable store remains.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
