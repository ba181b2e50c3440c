// Package process contains the append-only audit ledger of order status
// transitions. Records are written by the routing use cases in the same
// transaction as the order mutation and are never updated or deleted, so the
// order's current status always equals the status of its newest record.
package process

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not created
// through the NewRecord or RestoreRecord factory methods.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")

// Record is one immutable audit entry capturing a single status transition of
// an order and the moment it happened.
type Record struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    order.Status
	createdAt time.Time

	isConstructed bool
}

// NewRecord creates an audit record for a status transition happening now-ish;
// the caller supplies the timestamp so a multi-transition operation can stamp
// all its records consistently.
func NewRecord(orderID kernel.UUID, status order.Status, createdAt time.Time) (*Record, error) {
	return RestoreRecord(kernel.NewUUID(), orderID, status, createdAt)
}

// RestoreRecord reconstructs an audit record from persistence.
func RestoreRecord(id kernel.UUID, orderID kernel.UUID, status order.Status, createdAt time.Time) (*Record, error) {
	r := &Record{
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	return r, nil
}

// Validate ensures the Record instance was properly constructed through a factory.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}

	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order the transition belongs to.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// Status returns the status the order transitioned into.
func (r *Record) Status() order.Status {
	return r.status
}

// CreatedAt returns when the transition was recorded.
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}
