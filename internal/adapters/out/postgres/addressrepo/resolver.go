// Package addressrepo resolves delivery address identifiers to validated
// coordinates. Addresses are owned by the customer subsystem; this adapter
// only reads them.
package addressrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressDTO represents the database structure for delivery addresses.
type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AddressLine string
	Latitude    float64
	Longitude   float64
}

// TableName specifies the database table name for addresses.
func (AddressDTO) TableName() string {
	return "addresses"
}

// GormAddressResolver implements AddressResolver using GORM.
type GormAddressResolver struct {
	db *gorm.DB
}

// NewGormAddressResolver creates a new GORM address resolver.
func NewGormAddressResolver(db *gorm.DB) *GormAddressResolver {
	return &GormAddressResolver{db: db}
}

// Resolve looks up the address and returns its validated coordinates.
func (r *GormAddressResolver) Resolve(ctx context.Context, addressID kernel.UUID) (ports.Address, error) {
	if err := addressID.Validate(); err != nil {
		return ports.Address{}, err
	}

	var dto AddressDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", addressID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Address{}, errs.NewObjectNotFoundError("address", addressID.String())
		}
		return ports.Address{}, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return ports.Address{}, err
	}

	return ports.Address{
		Location:    location,
		AddressLine: dto.AddressLine,
	}, nil
}
