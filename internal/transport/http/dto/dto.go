// Package dto holds the JSON shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// ErrorCode classifies an error response.
type ErrorCode string

const (
	NOTFOUND        ErrorCode = "NOT_FOUND"
	INVALIDARGUMENT ErrorCode = "INVALID_ARGUMENT"
	INVALIDSTATE    ErrorCode = "INVALID_STATE"
	UNAUTHORIZED    ErrorCode = "UNAUTHORIZED"
	INTERNAL        ErrorCode = "INTERNAL"
)

// ErrorBody is the payload of ErrorResponse.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse is returned for every failed call.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// CreateRequestBody is the payload of POST /api/requests.
type CreateRequestBody struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	RequesterID   int64   `json:"requesterId" validate:"required,gt=0"`
	ApproverID    int64   `json:"approverId" validate:"required,gt=0"`
	RequestTypeID int64   `json:"requestTypeId" validate:"required,gt=0"`
}

// DecisionBody is the payload of the approve and reject calls.
type DecisionBody struct {
	Comments   *string `json:"comments,omitempty" validate:"omitempty,max=4000"`
	ApproverID int64   `json:"approverId" validate:"required,gt=0"`
}

// RequestSummary is a request as listed to one of its parties.
type RequestSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	TypeName        string    `json:"typeName"`
	CreatedAt       time.Time `json:"createdAt"`
	RelatedUserName string    `json:"relatedUserName"`
}

// RequestDetails is the full view of a request.
type RequestDetails struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Status          string    `json:"status"`
	TypeName        string    `json:"typeName"`
	CreatedAt       time.Time `json:"createdAt"`
	RelatedUserName string    `json:"relatedUserName"`
	Comments        *string   `json:"comments"`
}

// User is a directory entry.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	Email    *string `json:"email"`
}

// RequestType is a catalog entry.
type RequestType struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
