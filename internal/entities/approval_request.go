// Package entities contains core business entities.
package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestStatus enumerates approval request lifecycle states.
type RequestStatus string

const (
	// StatusPending is the initial state.
	StatusPending RequestStatus = "PENDING"
	// StatusApproved is terminal.
	StatusApproved RequestStatus = "APPROVED"
	// StatusRejected is terminal.
	StatusRejected RequestStatus = "REJECTED"
)

// IsTerminal reports whether no transition may leave s.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ApprovalRequest is a domain model of a request awaiting a decision.
// Parties and type are referenced by id only.
type ApprovalRequest struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Status      RequestStatus
	RequesterID int64
	ApproverID  *int64
	TypeID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateRequestInput carries the fields needed to open a request.
type CreateRequestInput struct {
	Title         string
	Description   *string
	RequesterID   int64
	ApproverID    int64
	RequestTypeID int64
}

// Validate checks the fields that do not need a store lookup.
func (in CreateRequestInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	return nil
}

// Decision is an approve or reject action taken on a request.
type Decision struct {
	RequestID uuid.UUID
	ActorID   int64
	Outcome   RequestStatus
	Comments  *string
}

// Action returns the audit label recorded for the decision.
func (d Decision) Action() string {
	return string(d.Outcome)
}

func (d Decision) verb() string {
	if d.Outcome == StatusRejected {
		return "reject"
	}
	return "approve"
}

// Apply moves the request to the decision outcome.
// Only a pending request can change, and only its recorded approver may change it.
func (r *ApprovalRequest) Apply(d Decision, at time.Time) error {
	if d.Outcome != StatusApproved && d.Outcome != StatusRejected {
		return fmt.Errorf("%w: unsupported outcome %q", ErrInvalidArgument, d.Outcome)
	}
	if r.Status != StatusPending {
		return fmt.Errorf("%w: request is not in PENDING status, current status: %s", ErrInvalidState, r.Status)
	}
	if r.ApproverID == nil || *r.ApproverID != d.ActorID {
		return fmt.Errorf("%w: user with id %d is not authorized to %s this request", ErrUnauthorized, d.ActorID, d.verb())
	}
	r.Status = d.Outcome
	r.UpdatedAt = at
	return nil
}
