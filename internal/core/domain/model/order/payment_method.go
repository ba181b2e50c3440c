package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod identifies how the customer settles the order.
// The value is carried verbatim from the order-placement flow; orders with an
// unresolvable method are rejected before any store assignment happens.
type PaymentMethod string

const (
	// PaymentMethodCard is an upfront card payment through the gateway.
	PaymentMethodCard PaymentMethod = "card"

	// PaymentMethodWallet is an upfront payment from the customer's wallet balance.
	PaymentMethodWallet PaymentMethod = "wallet"

	// PaymentMethodPayOnDelivery settles on handover; accepting such an order
	// triggers an order-created notification to downstream systems.
	PaymentMethodPayOnDelivery PaymentMethod = "pay_on_delivery"
)

// getValidPaymentMethods returns the set of resolvable payment methods.
func getValidPaymentMethods() map[PaymentMethod]struct{} {
	return map[PaymentMethod]struct{}{
		PaymentMethodCard:          {},
		PaymentMethodWallet:        {},
		PaymentMethodPayOnDelivery: {},
	}
}

// Validate checks that the payment method is one of the resolvable methods.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethods()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%q is not a resolvable payment method", string(m)),
		)
	}
	return nil
}

// IsPayOnDelivery reports whether the order settles on handover.
func (m PaymentMethod) IsPayOnDelivery() bool {
	return m == PaymentMethodPayOnDelivery
}

// String returns the raw payment method value.
func (m PaymentMethod) String() string {
	return string(m)
}
