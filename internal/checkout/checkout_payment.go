package checkout

import "fmt"

// initializePayment opens a payment session for the created orders and
// returns the page URL the embedded browser should load. A success
// response without a URL is an integration failure, not a success.
func (o *Orchestrator) initializePayment(sess *Session, orderIDs []string) (string, error) {
	session, err := o.payments.InitializePayment(sess.ctx, sess.UserID, orderIDs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}
	if session.PaymentPageURL == "" {
		return "", ErrPaymentURLMissing
	}
	return session.PaymentPageURL, nil
}
