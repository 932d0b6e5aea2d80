package checkout

import (
	"context"
	"sync"

	"github.com/pawmart/shopcore/internal/api"
)

// mockOrderAPI implements api.OrderAPI for testing
type mockOrderAPI struct {
	mu      sync.Mutex
	resp    *api.CreateOrderResponse
	err     error
	lastReq *api.CreateOrderRequest
	calls   int
	block   chan struct{} // when set, the call parks until closed or ctx ends
}

func (m *mockOrderAPI) CreateOrder(ctx context.Context, req *api.CreateOrderRequest) (*api.CreateOrderResponse, error) {
	m.mu.Lock()
	m.lastReq = req
	m.calls++
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-block:
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockOrderAPI) request() *api.CreateOrderRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}

// mockPaymentAPI implements api.PaymentAPI for testing
type mockPaymentAPI struct {
	mu           sync.Mutex
	session      *api.PaymentSession
	err          error
	lastOrderIDs []string
}

func (m *mockPaymentAPI) InitializePayment(_ context.Context, _ string, orderIDs []string) (*api.PaymentSession, error) {
	m.mu.Lock()
	m.lastOrderIDs = orderIDs
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockPaymentAPI) orderIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOrderIDs
}

// fakeIdentity is a mutable identity provider.
type fakeIdentity struct {
	mu      sync.Mutex
	id      string
	loading bool
}

func (f *fakeIdentity) ActiveUser() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id, f.loading
}

func (f *fakeIdentity) set(id string, loading bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
	f.loading = loading
}
