package domain

type CheckoutStatus string

const (
	CheckoutStatusCollectingDelivery  CheckoutStatus = "COLLECTING_DELIVERY"
	CheckoutStatusCreatingOrder       CheckoutStatus = "CREATING_ORDER"
	CheckoutStatusInitializingPayment CheckoutStatus = "INITIALIZING_PAYMENT"
	CheckoutStatusAwaitingPayment     CheckoutStatus = "AWAITING_PAYMENT"
	CheckoutStatusSucceeded           CheckoutStatus = "SUCCEEDED"
	CheckoutStatusFailed              CheckoutStatus = "FAILED"
	CheckoutStatusCancelled           CheckoutStatus = "CANCELLED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusSucceeded || s == CheckoutStatusFailed || s == CheckoutStatusCancelled
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

// transitions is the closed legality table. Every non-terminal state may
// move to FAILED or CANCELLED; terminal states have no outgoing edges.
var transitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusCollectingDelivery:  {CheckoutStatusCreatingOrder, CheckoutStatusFailed, CheckoutStatusCancelled},
	CheckoutStatusCreatingOrder:       {CheckoutStatusInitializingPayment, CheckoutStatusFailed, CheckoutStatusCancelled},
	CheckoutStatusInitializingPayment: {CheckoutStatusAwaitingPayment, CheckoutStatusFailed, CheckoutStatusCancelled},
	CheckoutStatusAwaitingPayment:     {CheckoutStatusSucceeded, CheckoutStatusFailed, CheckoutStatusCancelled},
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DeliveryType selects how an order is fulfilled.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// DeliverySelection is the user's confirmed delivery choice. Address is
// required iff Type is DeliveryTypeDelivery.
type DeliverySelection struct {
	Type    DeliveryType `json:"type"`
	Address string       `json:"address,omitempty"`
}
