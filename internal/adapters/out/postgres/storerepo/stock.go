package storerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormInventoryChecker implements InventoryChecker over the store_stock table.
type GormInventoryChecker struct {
	db *gorm.DB
}

// NewGormInventoryChecker creates a new GORM inventory checker.
func NewGormInventoryChecker(db *gorm.DB) *GormInventoryChecker {
	return &GormInventoryChecker{db: db}
}

// CheckStockAtStore reports whether the store holds at least quantity units of
// the product color variant. A missing stock row means zero stock, not an error.
func (c *GormInventoryChecker) CheckStockAtStore(
	ctx context.Context,
	productColorID, storeID kernel.UUID,
	quantity int,
) (bool, error) {
	if err := errors.Join(productColorID.Validate(), storeID.Validate()); err != nil {
		return false, err
	}

	var dto StockDTO
	err := c.db.WithContext(ctx).
		First(&dto, "product_color_id = ? AND store_id = ?", productColorID.Bytes(), storeID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return dto.Quantity >= quantity, nil
}

// HasSufficientGlobalStock reports whether quantity units exist across all
// stores combined.
func (c *GormInventoryChecker) HasSufficientGlobalStock(
	ctx context.Context,
	productColorID kernel.UUID,
	quantity int,
) (bool, error) {
	if err := productColorID.Validate(); err != nil {
		return false, err
	}

	var total int
	err := c.db.WithContext(ctx).
		Model(&StockDTO{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_color_id = ?", productColorID.Bytes()).
		Scan(&total).Error
	if err != nil {
		return false, err
	}

	return total >= quantity, nil
}
