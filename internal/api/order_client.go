package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pawmart/shopcore/internal/domain"
)

// OrderItem is one orderable line in the create-order payload. Only
// product-kind cart lines are submitted.
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID       string              `json:"user_id"`
	Items        []OrderItem         `json:"items"`
	DeliveryType domain.DeliveryType `json:"delivery_type"`
	Address      string              `json:"address,omitempty"`
}

type Order struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
	Total  int64  `json:"total,omitempty"`
}

type CreateOrderResponse struct {
	OrderIDs []string `json:"order_ids"`
	Orders   []Order  `json:"orders,omitempty"`
}

// OrderAPI is the order-service collaborator contract.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
}

type OrderClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewOrderClient(cfg Config) *OrderClient {
	return &OrderClient{
		baseURL: cfg.BaseURL,
		client:  newHTTPClient(),
		timeout: cfg.timeout(),
		breaker: newBreaker("order-api"),
	}
}

func (c *OrderClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := postJSON(ctx, c.client, c.breaker, c.baseURL+"/api/v1/orders", req)
	if err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	var resp CreateOrderResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode order response failed: %w", err)
	}
	return &resp, nil
}
