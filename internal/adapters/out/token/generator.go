// Package token generates fulfillment tokens handed to accepting stores.
package token

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UUIDGenerator implements FulfillmentTokenGenerator with random UUID tokens.
// Tokens are opaque; downstream verification only compares them for equality.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUID-based token generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate produces a fresh token for the order.
func (g *UUIDGenerator) Generate(orderID kernel.UUID) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}

	raw, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate fulfillment token: %w", err)
	}

	return raw.String(), nil
}
