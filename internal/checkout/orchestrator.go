// Package checkout drives the multi-step purchase protocol: delivery
// selection, order creation, payment-session initialization and
// asynchronous payment-result detection. The cart is only ever mutated on
// a confirmed success, so every failure path is retryable.
package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/pawmart/shopcore/internal/api"
	"github.com/pawmart/shopcore/internal/cart"
	"github.com/pawmart/shopcore/internal/domain"
	"github.com/pawmart/shopcore/internal/identity"
	"github.com/pawmart/shopcore/internal/payment"
)

// Session is the ephemeral checkout state for one user. It is never
// persisted; a process restart always starts from idle.
type Session struct {
	ID         string
	UserID     string
	Status     domain.CheckoutStatus
	Delivery   domain.DeliverySelection
	OrderIDs   []string
	PaymentURL string
	Reason     string
	StartedAt  time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Orchestrator owns all checkout sessions, at most one non-terminal
// session per user id. The sessions map only holds live sessions; a user
// with no entry is idle.
type Orchestrator struct {
	mu       sync.Mutex
	sessions map[string]*Session

	carts    *cart.Service
	orders   api.OrderAPI
	payments api.PaymentAPI
	ids      identity.Provider
	detector *payment.ResultDetector
	bus      EventBus.Bus
}

// NewOrchestrator wires the checkout flow. bus may be nil when no one
// listens for progress events.
func NewOrchestrator(carts *cart.Service, orders api.OrderAPI, payments api.PaymentAPI, ids identity.Provider, bus EventBus.Bus) *Orchestrator {
	return &Orchestrator{
		sessions: make(map[string]*Session),
		carts:    carts,
		orders:   orders,
		payments: payments,
		ids:      ids,
		detector: payment.NewResultDetector(),
		bus:      bus,
	}
}

// Begin starts a checkout session for the active user. It fails fast on a
// missing user, an empty cart, or a session already in flight.
func (o *Orchestrator) Begin(ctx context.Context) (string, error) {
	userID, err := o.resolveUser()
	if err != nil {
		return "", err
	}

	o.mu.Lock()
	_, inFlight := o.sessions[userID]
	o.mu.Unlock()
	if inFlight {
		return "", ErrCheckoutInProgress
	}

	userCart, err := o.carts.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to read cart: %w", err)
	}
	if userCart.IsEmpty() {
		return "", ErrEmptyCart
	}

	sessCtx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    domain.CheckoutStatusCollectingDelivery,
		StartedAt: time.Now(),
		ctx:       sessCtx,
		cancel:    cancel,
	}

	o.mu.Lock()
	if _, again := o.sessions[userID]; again {
		o.mu.Unlock()
		cancel()
		return "", ErrCheckoutInProgress
	}
	o.sessions[userID] = sess
	o.publishStatus(sess)
	o.mu.Unlock()

	return sess.ID, nil
}

// ConfirmDelivery validates the delivery selection and runs the session
// through order creation and payment initialization. On success it returns
// the payment page URL and leaves the session awaiting the payment result.
func (o *Orchestrator) ConfirmDelivery(ctx context.Context, sel domain.DeliverySelection) (string, error) {
	userID, err := o.resolveUser()
	if err != nil {
		return "", err
	}

	o.mu.Lock()
	sess, ok := o.sessions[userID]
	if !ok || sess.Status != domain.CheckoutStatusCollectingDelivery {
		o.mu.Unlock()
		return "", ErrNoActiveCheckout
	}
	if sel.Type == domain.DeliveryTypeDelivery && sel.Address == "" {
		// Session stays in COLLECTING_DELIVERY so the user can fix the form.
		o.mu.Unlock()
		return "", ErrMissingAddress
	}
	sess.Delivery = sel
	o.mu.Unlock()

	userCart, err := o.carts.Get(ctx, userID)
	if err != nil {
		o.failSession(sess, fmt.Sprintf("failed to read cart: %v", err))
		return "", fmt.Errorf("failed to read cart: %w", err)
	}
	products := userCart.Products()
	if len(products) == 0 {
		// Nothing orderable: abort back to idle, the cart is untouched.
		o.dropSession(sess)
		return "", ErrNoOrderableItems
	}

	if err := o.transition(sess, domain.CheckoutStatusCreatingOrder); err != nil {
		return "", err
	}
	orderIDs, err := o.createOrders(sess, products)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrOrderCreation, err)
		o.failSession(sess, wrapped.Error())
		return "", wrapped
	}

	if err := o.transition(sess, domain.CheckoutStatusInitializingPayment); err != nil {
		return "", err
	}
	pageURL, err := o.initializePayment(sess, orderIDs)
	if err != nil {
		o.failSession(sess, err.Error())
		return "", err
	}

	o.mu.Lock()
	sess.PaymentURL = pageURL
	o.mu.Unlock()
	if err := o.transition(sess, domain.CheckoutStatusAwaitingPayment); err != nil {
		return "", err
	}
	return pageURL, nil
}

// HandleNavigation feeds one embedded-browser navigation event to the
// result detector. It returns the session status after processing, or the
// empty status when the event was ignored. Events arriving after the
// session left AWAITING_PAYMENT are silently dropped, which makes repeated
// result navigations idempotent.
func (o *Orchestrator) HandleNavigation(ctx context.Context, rawURL string) (domain.CheckoutStatus, error) {
	userID, err := o.resolveUser()
	if err != nil {
		return "", err
	}

	signal := o.detector.OnNavigation(rawURL)
	if signal == payment.SignalNone {
		return "", nil
	}

	o.mu.Lock()
	sess, ok := o.sessions[userID]
	if !ok || sess.Status != domain.CheckoutStatusAwaitingPayment {
		o.mu.Unlock()
		return "", nil
	}

	if signal == payment.SignalFailed {
		sess.Status = domain.CheckoutStatusFailed
		sess.Reason = "payment failed"
		delete(o.sessions, userID)
		o.publishStatus(sess)
		o.publishFailure(sess)
		o.mu.Unlock()
		return domain.CheckoutStatusFailed, nil
	}

	sess.Status = domain.CheckoutStatusSucceeded
	delete(o.sessions, userID)
	o.publishStatus(sess)
	o.mu.Unlock()

	if err := o.carts.Clear(ctx, userID); err != nil {
		log.Printf("failed to clear cart after successful checkout: %v", err)
		return domain.CheckoutStatusSucceeded, err
	}
	return domain.CheckoutStatusSucceeded, nil
}

// Cancel aborts the active session, releasing any in-flight API call. The
// cart is untouched. Cancelling with no active session is a no-op.
func (o *Orchestrator) Cancel() error {
	userID, err := o.resolveUser()
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	sess, ok := o.sessions[userID]
	if !ok {
		return nil
	}
	sess.cancel()
	sess.Status = domain.CheckoutStatusCancelled
	delete(o.sessions, userID)
	o.publishStatus(sess)
	return nil
}

// Status reports the active session's status for the current user; ok is
// false when the user is idle.
func (o *Orchestrator) Status() (domain.CheckoutStatus, bool) {
	userID, err := o.resolveUser()
	if err != nil {
		return "", false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	sess, ok := o.sessions[userID]
	if !ok {
		return "", false
	}
	return sess.Status, true
}

func (o *Orchestrator) resolveUser() (string, error) {
	id, loading := o.ids.ActiveUser()
	if loading || id == "" {
		return "", identity.ErrMissingUser
	}
	return id, nil
}

// transition moves the session along the legality table. A session that
// was cancelled or failed concurrently no longer accepts forward moves, so
// late completions cannot resurrect it.
func (o *Orchestrator) transition(s *Session, to domain.CheckoutStatus) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !domain.CanTransitionTo(s.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.Status, to)
	}
	s.Status = to
	o.publishStatus(s)
	return nil
}

// failSession lands the session in FAILED and destroys it. Already
// terminal sessions are left alone.
func (o *Orchestrator) failSession(s *Session, reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !domain.CanTransitionTo(s.Status, domain.CheckoutStatusFailed) {
		return
	}
	s.Status = domain.CheckoutStatusFailed
	s.Reason = reason
	s.cancel()
	delete(o.sessions, s.UserID)
	o.publishStatus(s)
	o.publishFailure(s)
}

// dropSession destroys a session without a terminal transition (abort back
// to idle before anything was submitted).
func (o *Orchestrator) dropSession(s *Session) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s.cancel()
	delete(o.sessions, s.UserID)
}
