// Package order contains the Order aggregate and its supporting value objects
// for the fulfillment routing flow.
//
// The package includes:
//   - Order: the aggregate root tracking routing status, assigned store,
//     rejection ledger, and order lines
//   - Status: the routing state machine with validated transitions
//   - Line: an immutable product position of the order
//   - PaymentMethod: the resolvable payment method enumeration
//
// The aggregate enforces the hard rejection cutoff (MaxRejections) and the
// status/store consistency invariants described on the Order type.
package order
