package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/process"
)

// ProcessRepository defines the persistence contract for the append-only
// status-transition ledger. Records are only ever added; there is no update
// or delete operation.
type ProcessRepository interface {
	// Add appends a new transition record.
	Add(ctx context.Context, record *process.Record) error

	// GetByOrderID retrieves all transition records of one order,
	// oldest first.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*process.Record, error)
}
