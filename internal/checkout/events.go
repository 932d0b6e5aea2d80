package checkout

import "github.com/pawmart/shopcore/internal/domain"

// EventBus topics the orchestrator publishes on. The presentation layer
// subscribes to drive progress indicators and error alerts.
const (
	TopicStatus = "checkout:status"
	TopicFailed = "checkout:failed"
)

// StatusEvent is published on every session transition.
type StatusEvent struct {
	SessionID  string
	UserID     string
	Status     domain.CheckoutStatus
	PaymentURL string
}

// FailureEvent is published alongside the FAILED status with the reason
// shown to the user.
type FailureEvent struct {
	SessionID string
	UserID    string
	Reason    string
}

func (o *Orchestrator) publishStatus(s *Session) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(TopicStatus, StatusEvent{
		SessionID:  s.ID,
		UserID:     s.UserID,
		Status:     s.Status,
		PaymentURL: s.PaymentURL,
	})
}

func (o *Orchestrator) publishFailure(s *Session) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(TopicFailed, FailureEvent{
		SessionID: s.ID,
		UserID:    s.UserID,
		Reason:    s.Reason,
	})
}
