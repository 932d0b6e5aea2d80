package checkout

import "errors"

var (
	// Validation failures; rejected before any network call.
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrMissingAddress   = errors.New("address is required for delivery")
	ErrNoOrderableItems = errors.New("no orderable items in cart")

	// Session lifecycle failures.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrNoActiveCheckout   = errors.New("no active checkout session")
	ErrIllegalTransition  = errors.New("illegal transition of checkout status")

	// Integration failures; wrap the upstream reason.
	ErrOrderCreation     = errors.New("order creation failed")
	ErrPaymentInit       = errors.New("payment initialization failed")
	ErrPaymentURLMissing = errors.New("payment page url missing")
)
