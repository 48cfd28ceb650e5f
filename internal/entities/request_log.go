// Package entities contains core business entities.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// RequestLog is an append-only audit entry for an action taken on a request.
type RequestLog struct {
	ID          int64
	RequestID   uuid.UUID
	UserID      int64
	ActionTaken string
	Comments    *string
	ActionDate  time.Time
}
