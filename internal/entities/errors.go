// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrRequestTypeNotFound is returned when a request type does not exist.
	ErrRequestTypeNotFound = errors.New("request type not found")
	// ErrRequestNotFound is returned when an approval request does not exist.
	ErrRequestNotFound = errors.New("request not found")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState signals a transition attempted on a request that is no longer pending.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnauthorized signals that the acting user is not the request's approver.
	ErrUnauthorized = errors.New("unauthorized")
)

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRequestTypeNotFound) ||
		errors.Is(err, ErrRequestNotFound)
}
