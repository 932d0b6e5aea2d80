package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

type initializePaymentRequest struct {
	UserID   string   `json:"user_id"`
	OrderIDs []string `json:"order_ids"`
}

type PaymentSession struct {
	PaymentPageURL string `json:"payment_page_url"`
}

// PaymentAPI is the payment-service collaborator contract.
type PaymentAPI interface {
	InitializePayment(ctx context.Context, userID string, orderIDs []string) (*PaymentSession, error)
}

type PaymentClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewPaymentClient(cfg Config) *PaymentClient {
	return &PaymentClient{
		baseURL: cfg.BaseURL,
		client:  newHTTPClient(),
		timeout: cfg.timeout(),
		breaker: newBreaker("payment-api"),
	}
}

func (c *PaymentClient) InitializePayment(ctx context.Context, userID string, orderIDs []string) (*PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := initializePaymentRequest{UserID: userID, OrderIDs: orderIDs}
	data, err := postJSON(ctx, c.client, c.breaker, c.baseURL+"/api/v1/payments/initialize", req)
	if err != nil {
		return nil, fmt.Errorf("initialize payment failed: %w", err)
	}

	var session PaymentSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode payment response failed: %w", err)
	}
	return &session, nil
}
