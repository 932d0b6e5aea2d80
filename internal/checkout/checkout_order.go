package checkout

import (
	"errors"

	"github.com/pawmart/shopcore/internal/api"
	"github.com/pawmart/shopcore/internal/domain"
)

// createOrders submits the product subset of the cart to the Order API.
// The call runs on the session context so Cancel aborts it in flight.
// Service-kind lines are not orderable in the current contract and never
// reach the payload.
func (o *Orchestrator) createOrders(sess *Session, products []domain.CartItem) ([]string, error) {
	req := &api.CreateOrderRequest{
		UserID:       sess.UserID,
		Items:        mapOrderItems(products),
		DeliveryType: sess.Delivery.Type,
		Address:      sess.Delivery.Address,
	}

	resp, err := o.orders.CreateOrder(sess.ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.OrderIDs) == 0 {
		return nil, errors.New("order api returned no order ids")
	}

	o.mu.Lock()
	sess.OrderIDs = resp.OrderIDs
	o.mu.Unlock()
	return resp.OrderIDs, nil
}

func mapOrderItems(products []domain.CartItem) []api.OrderItem {
	items := make([]api.OrderItem, len(products))
	for i, p := range products {
		items[i] = api.OrderItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.UnitPrice,
			Quantity: p.Quantity,
		}
	}
	return items
}
