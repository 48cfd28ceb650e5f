// Package entities contains core business entities.
package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	// UnassignedName is shown when a request carries no approver.
	UnassignedName = "Unassigned"
	// NoCommentsText replaces absent comments in status notifications.
	NoCommentsText = "No comments provided"
)

// RequestSnapshot is a request together with its resolved parties and type.
type RequestSnapshot struct {
	Request   ApprovalRequest
	Requester User
	Approver  *User
	Type      RequestType
}

// ApproverName returns the approver's full name or UnassignedName.
func (s RequestSnapshot) ApproverName() string {
	if s.Approver == nil {
		return UnassignedName
	}
	return s.Approver.FullName
}

// RequestSummary is the list projection of a request.
type RequestSummary struct {
	ID              uuid.UUID
	Title           string
	Status          RequestStatus
	TypeName        string
	CreatedAt       time.Time
	RelatedUserName string
}

// RequestDetails is the full projection of a request.
type RequestDetails struct {
	ID              uuid.UUID
	Title           string
	Description     *string
	Status          RequestStatus
	TypeName        string
	CreatedAt       time.Time
	RelatedUserName string
	Comments        *string
}

// SummaryForRequester projects s as seen by its requester; the related user is the approver.
func (s RequestSnapshot) SummaryForRequester() RequestSummary {
	return s.summary(s.ApproverName())
}

// SummaryForApprover projects s as seen by its approver; the related user is the requester.
func (s RequestSnapshot) SummaryForApprover() RequestSummary {
	return s.summary(s.Requester.FullName)
}

func (s RequestSnapshot) summary(related string) RequestSummary {
	return RequestSummary{
		ID:              s.Request.ID,
		Title:           s.Request.Title,
		Status:          s.Request.Status,
		TypeName:        s.Type.Name,
		CreatedAt:       s.Request.CreatedAt,
		RelatedUserName: related,
	}
}

// Details projects s with the most recent audit comment.
func (s RequestSnapshot) Details(comments *string) RequestDetails {
	return RequestDetails{
		ID:              s.Request.ID,
		Title:           s.Request.Title,
		Description:     s.Request.Description,
		Status:          s.Request.Status,
		TypeName:        s.Type.Name,
		CreatedAt:       s.Request.CreatedAt,
		RelatedUserName: s.ApproverName(),
		Comments:        comments,
	}
}
