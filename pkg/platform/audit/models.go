package audit

import (
	"context"
	"time"

	id "cardspace/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time   `json:"timestamp"`
	UserID    id.UserID   `json:"user_id"`
	Action    string      `json:"action"`
	Reason    string      `json:"reason,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Metadata  interface{} `json:"metadata,omitempty"`
}

// AuditEvent names the actions this service records.
type AuditEvent string

const (
	// Onboarding events
	EventOnboardingCompleted AuditEvent = "onboarding_completed"
	EventOnboardingReset     AuditEvent = "onboarding_reset"

	// Navigation events
	EventPostAuthDecision  AuditEvent = "post_auth_decision"
	EventIdentityWaitLapse AuditEvent = "identity_wait_exhausted"

	// Wallet events
	EventCardAdded   AuditEvent = "card_added"
	EventCardRemoved AuditEvent = "card_removed"
)

// Store persists events. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
