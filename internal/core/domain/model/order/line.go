package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Line is a value object describing one product position of an order:
// which product color variant, how many units, and the unit price in minor
// currency units. Lines are immutable once the order is placed.
type Line struct {
	productColorID kernel.UUID
	quantity       int
	price          int64
}

// NewLine creates an order line with validation.
// Quantity must be positive and price must not be negative.
func NewLine(productColorID kernel.UUID, quantity int, price int64) (Line, error) {
	if err := productColorID.Validate(); err != nil {
		return Line{}, err
	}

	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if price < 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%d is negative", price))
	}

	return Line{
		productColorID: productColorID,
		quantity:       quantity,
		price:          price,
	}, nil
}

// ProductColorID returns the product color variant the line refers to.
func (l Line) ProductColorID() kernel.UUID {
	return l.productColorID
}

// Quantity returns the number of units ordered.
func (l Line) Quantity() int {
	return l.quantity
}

// Price returns the unit price in minor currency units.
func (l Line) Price() int64 {
	return l.price
}
