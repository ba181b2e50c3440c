// Package processrepo persists the append-only ledger of order status
// transitions. Records are inserted in the same transaction as the order
// mutation they describe and are never updated or deleted.
package processrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/process"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting transition records.
type RecordDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for transition records.
func (RecordDTO) TableName() string {
	return "process_records"
}

// fromDomain converts a transition record to its database representation.
func fromDomain(record *process.Record) RecordDTO {
	return RecordDTO{
		ID:        record.ID().Bytes(),
		OrderID:   record.OrderID().Bytes(),
		Status:    int(record.Status()),
		CreatedAt: record.CreatedAt(),
	}
}

// toDomain converts a database DTO to a transition record using RestoreRecord.
func toDomain(dto RecordDTO) (*process.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return process.RestoreRecord(id, orderID, order.Status(dto.Status), dto.CreatedAt)
}
