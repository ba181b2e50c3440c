// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational tables with indexing for the
// status-driven lookups the assignment job and the manager flow rely on.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID  `gorm:"type:uuid"`
	AddressID           uuid.UUID  `gorm:"type:uuid"`
	PaymentMethod       string
	StoreID             *uuid.UUID `gorm:"type:uuid;index"`
	Status              int        `gorm:"index"`
	RejectionCount      int
	LastRejectedStoreID *uuid.UUID `gorm:"type:uuid"`
	Reason              string
	FulfillmentToken    string
	TokenIssuedAt       *time.Time
	Lines               []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one product position of an order.
// Lines are immutable: they are inserted with the order and never updated.
type OrderLineDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ProductColorID uuid.UUID `gorm:"type:uuid"`
	Quantity       int
	Price          int64
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:             uuid.New(),
			OrderID:        orderID,
			ProductColorID: line.ProductColorID().Bytes(),
			Quantity:       line.Quantity(),
			Price:          line.Price(),
		})
	}

	return OrderDTO{
		ID:                  orderID,
		UserID:              aggregate.UserID().Bytes(),
		AddressID:           aggregate.AddressID().Bytes(),
		PaymentMethod:       aggregate.PaymentMethod().String(),
		StoreID:             optionalUUIDFromDomain(aggregate.Store()),
		Status:              int(aggregate.Status()),
		RejectionCount:      aggregate.RejectionCount(),
		LastRejectedStoreID: optionalUUIDFromDomain(aggregate.LastRejectedStore()),
		Reason:              aggregate.Reason(),
		FulfillmentToken:    aggregate.FulfillmentToken(),
		TokenIssuedAt:       aggregate.TokenIssuedAt(),
		Lines:               lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the rejection ledger using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := optionalUUIDToDomain(dto.StoreID)
	if err != nil {
		return nil, err
	}

	lastRejectedStoreID, err := optionalUUIDToDomain(dto.LastRejectedStoreID)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productColorID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductColorID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(productColorID, lineDTO.Quantity, lineDTO.Price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		userID,
		addressID,
		order.PaymentMethod(dto.PaymentMethod),
		storeID,
		order.Status(dto.Status),
		dto.RejectionCount,
		lastRejectedStoreID,
		dto.Reason,
		dto.FulfillmentToken,
		dto.TokenIssuedAt,
		lines,
	)
}

func optionalUUIDFromDomain(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	raw := id.Bytes()
	return &raw
}

func optionalUUIDToDomain(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	domainID, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}

	return &domainID, nil
}
