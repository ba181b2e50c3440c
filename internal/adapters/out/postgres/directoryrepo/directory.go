// Package directoryrepo reads customer and product reference data used to
// enrich outbound notification payloads.
package directoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents the database structure for customers.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string
	FullName string
}

// TableName specifies the database table name for customers.
func (UserDTO) TableName() string {
	return "users"
}

// ProductColorDTO represents the database structure for product color variants.
type ProductColorDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductName string
	ColorName   string
}

// TableName specifies the database table name for product color variants.
func (ProductColorDTO) TableName() string {
	return "product_colors"
}

// GormDirectory implements Directory using GORM.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a new GORM reference-data directory.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// GetUser retrieves the customer contact details for one user.
func (d *GormDirectory) GetUser(ctx context.Context, userID kernel.UUID) (ports.User, error) {
	if err := userID.Validate(); err != nil {
		return ports.User{}, err
	}

	var dto UserDTO
	err := d.db.WithContext(ctx).First(&dto, "id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, errs.NewObjectNotFoundError("user", userID.String())
		}
		return ports.User{}, err
	}

	return ports.User{
		Email:    dto.Email,
		FullName: dto.FullName,
	}, nil
}

// GetProductColors resolves all requested product color variants in one query.
// Variants that do not exist are absent from the returned map.
func (d *GormDirectory) GetProductColors(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]ports.ProductColor, error) {
	result := make(map[kernel.UUID]ports.ProductColor, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []ProductColorDTO
	err := d.db.WithContext(ctx).Find(&dtos, "id IN ?", rawIDs).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		result[id] = ports.ProductColor{
			ProductName: dto.ProductName,
			ColorName:   dto.ColorName,
		}
	}

	return result, nil
}
