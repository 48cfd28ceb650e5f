// Package notification delivers request lifecycle events to users by email.
// Dispatch is asynchronous and never reports failures back to the caller.
package notification

import (
	"context"
	"errors"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
)

// ErrNoRecipient is returned when the addressee of an event has no email address.
var ErrNoRecipient = errors.New("recipient has no email address")

// Dispatcher accepts lifecycle events without blocking the caller.
type Dispatcher interface {
	NotifyCreated(snap entities.RequestSnapshot)
	NotifyStatusChanged(snap entities.RequestSnapshot, actor entities.User, comments *string)
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Kind identifies a lifecycle event.
type Kind string

const (
	// KindRequestCreated is sent to the approver of a new request.
	KindRequestCreated Kind = "request_created"
	// KindStatusChanged is sent to the requester after approve or reject.
	KindStatusChanged Kind = "status_changed"
)

// Event is a queued notification.
type Event struct {
	Kind     Kind
	Snapshot entities.RequestSnapshot
	Actor    *entities.User
	Comments *string
}

// Message is an email ready for delivery.
type Message struct {
	RequestID uuid.UUID
	To        string
	ToName    string
	Subject   string
	HTMLBody  string
}
