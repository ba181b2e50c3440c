package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxRejections is the hard business cutoff: once an order has collected this
// many manager rejections it is cancelled, regardless of whether further
// candidate stores exist. The constant is not configurable per order.
const MaxRejections = 3

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrStoreMismatch is returned when a manager decision names a store that is
	// not the one the order is currently assigned to.
	ErrStoreMismatch = errors.New("decision store does not match the assigned store")
)

// Order is the aggregate root for the fulfillment routing flow. It tracks the
// routing status, the currently assigned store, the rejection ledger
// (rejection count plus the most recently rejected store), the explanation of
// the last transition, and the immutable order lines.
//
// Invariants:
//   - rejectionCount never decreases and equals the number of Reject transitions
//   - storeID is non-nil in every status except Pending and a Cancelled order
//     that never received an assignment
//   - status transitions follow the Status state machine
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id            kernel.UUID
	userID        kernel.UUID
	addressID     kernel.UUID
	paymentMethod PaymentMethod

	storeID             *kernel.UUID
	status              Status
	rejectionCount      int
	lastRejectedStoreID *kernel.UUID
	reason              string

	fulfillmentToken string
	tokenIssuedAt    *time.Time

	lines []Line

	isConstructed bool
}

// NewOrder creates a freshly placed order in Pending status.
//
// Parameters:
//   - id: unique order identifier
//   - userID: the customer who placed the order
//   - addressID: the delivery address to resolve for store ranking
//   - paymentMethod: must be a resolvable payment method
//   - lines: at least one order line
//
// The order starts unassigned with a zero rejection count.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	addressID kernel.UUID,
	paymentMethod PaymentMethod,
	lines []Line,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setAddressID(addressID),
		o.setPaymentMethod(paymentMethod),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without replaying its
// transitions. Status consistency rules are re-checked so a corrupted row
// cannot produce an aggregate that violates the invariants.
//
// The payment method is restored verbatim, not validated: an order persisted
// with an unresolvable method must still load so that assignment can fail it
// explicitly.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	addressID kernel.UUID,
	paymentMethod PaymentMethod,
	storeID *kernel.UUID,
	status Status,
	rejectionCount int,
	lastRejectedStoreID *kernel.UUID,
	reason string,
	fulfillmentToken string,
	tokenIssuedAt *time.Time,
	lines []Line,
) (*Order, error) {
	o := &Order{
		status:              status,
		storeID:             storeID,
		rejectionCount:      rejectionCount,
		lastRejectedStoreID: lastRejectedStoreID,
		reason:              reason,
		fulfillmentToken:    fulfillmentToken,
		tokenIssuedAt:       tokenIssuedAt,
		paymentMethod:       paymentMethod,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setAddressID(addressID),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if rejectionCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("rejection count is invalid",
			fmt.Errorf("%d is negative", rejectionCount))
	}

	if storeID == nil && (status == AssignedToStore || status == ManagerAccepted || status == ManagerRejected) {
		return nil, errs.NewValueIsInvalidErrorWithCause("store id is invalid",
			fmt.Errorf("%s order must have an assigned store", status.String()))
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the customer identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// AddressID returns the delivery address identifier.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// PaymentMethod returns the order's payment method.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Store returns the currently assigned store's ID, or nil before the first
// assignment (and for orders cancelled before one).
func (o *Order) Store() *kernel.UUID {
	return o.storeID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// RejectionCount returns how many times store managers rejected this order.
func (o *Order) RejectionCount() int {
	return o.rejectionCount
}

// LastRejectedStore returns the ID of the store that most recently rejected
// the order, or nil if it was never rejected.
func (o *Order) LastRejectedStore() *kernel.UUID {
	return o.lastRejectedStoreID
}

// Reason returns the free-text explanation of the last transition.
func (o *Order) Reason() string {
	return o.reason
}

// FulfillmentToken returns the token generated on manager acceptance.
// Empty until the order is accepted.
func (o *Order) FulfillmentToken() string {
	return o.fulfillmentToken
}

// TokenIssuedAt returns when the fulfillment token was generated, or nil.
func (o *Order) TokenIssuedAt() *time.Time {
	return o.tokenIssuedAt
}

// Lines returns the order lines. The returned slice must not be mutated.
func (o *Order) Lines() []Line {
	return o.lines
}

// HasReachedRejectionLimit reports whether the rejection budget is exhausted.
func (o *Order) HasReachedRejectionLimit() bool {
	return o.rejectionCount >= MaxRejections
}

// AssignToStore routes the order to the given store.
//
// Valid from Pending (first assignment) and ManagerRejected (reassignment).
// On success the status becomes AssignedToStore and the store is recorded.
func (o *Order) AssignToStore(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.AssignToStore()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.storeID = &storeID
	return nil
}

// Accept records the store manager's acceptance together with the generated
// fulfillment token. Valid only from AssignedToStore; ManagerAccepted is
// terminal for this subsystem.
func (o *Order) Accept(fulfillmentToken string, issuedAt time.Time) error {
	if fulfillmentToken == "" {
		return errs.NewValueIsRequiredError("fulfillment token")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.fulfillmentToken = fulfillmentToken
	o.tokenIssuedAt = &issuedAt
	return nil
}

// Reject records a manager rejection from the currently assigned store.
//
// The rejecting store must be the assigned one; the rejection count is
// incremented and the store becomes the last rejected store. The caller is
// responsible for following up with a reassignment or a cancellation; an
// order never rests in ManagerRejected.
func (o *Order) Reject(rejectedStoreID kernel.UUID, reason string) error {
	if err := rejectedStoreID.Validate(); err != nil {
		return err
	}

	if o.storeID == nil || !o.storeID.IsEqual(rejectedStoreID) {
		return ErrStoreMismatch
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.rejectionCount++
	o.lastRejectedStoreID = &rejectedStoreID
	o.reason = reason
	return nil
}

// Cancel removes the order from the fulfillment flow permanently.
// Valid from every non-terminal status.
func (o *Order) Cancel(reason string) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.reason = reason
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setUserID validates and sets the customer identifier.
func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

// setAddressID validates and sets the delivery address identifier.
func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

// setPaymentMethod validates and sets the payment method.
// Only used by NewOrder; RestoreOrder keeps the persisted value as-is.
func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

// setLines validates and sets the order lines.
// An order must carry at least one line.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	o.lines = lines
	return nil
}
