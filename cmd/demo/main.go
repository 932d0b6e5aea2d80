// Command demo wires the full client core against an in-process stub
// marketplace backend and walks one checkout end to end: add lines, begin
// checkout, confirm delivery, then replay the payment result navigation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pawmart/shopcore/internal/api"
	"github.com/pawmart/shopcore/internal/cart"
	"github.com/pawmart/shopcore/internal/checkout"
	"github.com/pawmart/shopcore/internal/domain"
	"github.com/pawmart/shopcore/internal/identity"
)

type Config struct {
	CartDBPath     string
	UserID         string
	RequestTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		CartDBPath:     getEnv("CART_DB_PATH", ""),
		UserID:         getEnv("DEMO_USER_ID", "demo-user"),
		RequestTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Cart store: bbolt when a path is configured, memory otherwise.
	var repo cart.Repository
	if cfg.CartDBPath != "" {
		boltRepo, err := cart.OpenBolt(cfg.CartDBPath)
		if err != nil {
			log.Fatalf("failed to open cart db: %v", err)
		}
		defer boltRepo.Close()
		repo = boltRepo
		log.Printf("cart db at %s", cfg.CartDBPath)
	} else {
		repo = cart.NewMemoryRepository()
	}
	carts := cart.NewService(repo, cart.NewMemoryCache())

	// Stub backend standing in for the order and payment services.
	backendURL, shutdown := startStubBackend()
	defer shutdown()
	log.Printf("stub backend at %s", backendURL)

	orders := api.NewOrderClient(api.Config{BaseURL: backendURL, Timeout: cfg.RequestTimeout})
	payments := api.NewPaymentClient(api.Config{BaseURL: backendURL, Timeout: cfg.RequestTimeout})

	bus := EventBus.New()
	if err := bus.Subscribe(checkout.TopicStatus, func(ev checkout.StatusEvent) {
		log.Printf("checkout status: %s", ev.Status)
	}); err != nil {
		log.Fatalf("failed to subscribe: %v", err)
	}

	orch := checkout.NewOrchestrator(carts, orders, payments, identity.Static{ID: cfg.UserID}, bus)

	// Fill the cart: a product with quantity and an hourly service.
	food, err := domain.NewProduct("prod-food-1", "Puppy food 2kg", 1999, 2, "img/food.png")
	if err != nil {
		log.Fatalf("bad product: %v", err)
	}
	sitter, err := domain.NewService("svc-sitter-1", "Dog sitter", 2500, domain.PriceHourly, "img/sitter.png")
	if err != nil {
		log.Fatalf("bad service: %v", err)
	}
	for _, item := range []domain.CartItem{food, sitter} {
		if err := carts.AddOrIncrease(ctx, cfg.UserID, item); err != nil {
			log.Fatalf("failed to add item: %v", err)
		}
	}
	total, err := carts.Total(ctx, cfg.UserID)
	if err != nil {
		log.Fatalf("failed to total cart: %v", err)
	}
	log.Printf("cart total: %d.%02d", total/100, total%100)

	// Drive the checkout.
	if _, err := orch.Begin(ctx); err != nil {
		log.Fatalf("begin checkout: %v", err)
	}
	pageURL, err := orch.ConfirmDelivery(ctx, domain.DeliverySelection{
		Type:    domain.DeliveryTypeDelivery,
		Address: "1 Bark Street",
	})
	if err != nil {
		log.Fatalf("confirm delivery: %v", err)
	}
	log.Printf("payment page: %s", pageURL)

	// Replay what the embedded browser would emit: the callback hop first,
	// then the result redirect.
	for _, nav := range []string{
		backendURL + "/payments/callback",
		backendURL + "/payments/result?success=true",
	} {
		status, errNav := orch.HandleNavigation(ctx, nav)
		if errNav != nil {
			log.Fatalf("navigation %s: %v", nav, errNav)
		}
		if status != "" {
			log.Printf("payment outcome: %s", status)
		}
	}

	remaining, err := carts.Get(ctx, cfg.UserID)
	if err != nil {
		log.Fatalf("failed to read cart: %v", err)
	}
	log.Printf("cart lines after checkout: %d", len(remaining.Items))
}

// startStubBackend serves minimal order and payment endpoints on a loopback
// listener and returns its base URL.
func startStubBackend() (string, func()) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/v1/orders", func(w http.ResponseWriter, req *http.Request) {
		var body api.CreateOrderRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}
		if len(body.Items) == 0 {
			respondJSON(w, http.StatusBadRequest, map[string]string{"message": "no items"})
			return
		}
		respondJSON(w, http.StatusCreated, api.CreateOrderResponse{
			OrderIDs: []string{uuid.New().String()},
		})
	})

	r.Post("/api/v1/payments/initialize", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusOK, api.PaymentSession{
			PaymentPageURL: fmt.Sprintf("http://%s/payments/page", req.Host),
		})
	})

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	srv := &http.Server{Handler: r}
	go func() {
		if errServe := srv.Serve(lis); errServe != nil && errServe != http.ErrServerClosed {
			log.Printf("stub backend error: %v", errServe)
		}
	}()

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return "http://" + lis.Addr().String(), shutdown
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
