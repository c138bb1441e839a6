package service

import (
	"context"
	"time"
)

// AccountEventType names what happened to an account.
type AccountEventType string

const (
	AccountEventRegistered          AccountEventType = "account.registered"
	AccountEventRegistrationPartial AccountEventType = "account.registration_partial"
	AccountEventPasswordChanged     AccountEventType = "account.password_changed"
	AccountEventAvatarUpdated       AccountEventType = "account.avatar_updated"
	AccountEventProfileSaved        AccountEventType = "account.profile_saved"
)

// AccountEvent is a notification about an account change. It never carries credentials.
type AccountEvent struct {
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       AccountEventType `json:"type"`
	UserID     string           `json:"user_id"`
	Email      string           `json:"email"`
	Role       string           `json:"role,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing account events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes a single event.
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
