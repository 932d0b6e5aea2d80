package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializePayment_Success(t *testing.T) {
	var received initializePaymentRequest
	r := chi.NewRouter()
	r.Post("/api/v1/payments/initialize", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&received))
		json.NewEncoder(w).Encode(PaymentSession{PaymentPageURL: "https://pay/x"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewPaymentClient(Config{BaseURL: srv.URL})
	session, err := client.InitializePayment(context.Background(), "u1", []string{"O1", "O2"})

	require.NoError(t, err)
	assert.Equal(t, "https://pay/x", session.PaymentPageURL)
	assert.Equal(t, "u1", received.UserID)
	assert.Equal(t, []string{"O1", "O2"}, received.OrderIDs)
}

func TestInitializePayment_ErrorFieldSurfaced(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/payments/initialize", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "provider unavailable"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewPaymentClient(Config{BaseURL: srv.URL})
	_, err := client.InitializePayment(context.Background(), "u1", []string{"O1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider unavailable")
}

func TestInitializePayment_MissingURLIsNotAnError(t *testing.T) {
	// The client only transports; the orchestrator decides that an empty
	// payment_page_url is a failure.
	r := chi.NewRouter()
	r.Post("/api/v1/payments/initialize", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewPaymentClient(Config{BaseURL: srv.URL})
	session, err := client.InitializePayment(context.Background(), "u1", []string{"O1"})

	require.NoError(t, err)
	assert.Empty(t, session.PaymentPageURL)
}
