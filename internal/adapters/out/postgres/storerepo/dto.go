// Package storerepo persists the fulfillment store directory and the
// per-store stock levels used for feasibility checks.
package storerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// StoreDTO represents the database structure for persisting stores.
type StoreDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Latitude  float64
	Longitude float64
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

// StockDTO represents one store's stock level for one product color variant.
type StockDTO struct {
	ProductColorID uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity       int
}

// TableName specifies the database table name for stock levels.
func (StockDTO) TableName() string {
	return "store_stock"
}

// fromDomain converts a store aggregate to its database representation.
func fromDomain(aggregate *store.Store) StoreDTO {
	return StoreDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Latitude:  aggregate.Location().Latitude(),
		Longitude: aggregate.Location().Longitude(),
	}
}

// toDomain converts a database DTO to a store aggregate.
func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return store.NewStore(id, dto.Name, location)
}
