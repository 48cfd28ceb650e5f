// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes the user directory.
type UserInterface interface {
	GetUser(ctx context.Context, id int64) (*entities.User, error)
	GetUsers(ctx context.Context, ids []int64) (map[int64]entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
}

// RequestTypeInterface exposes the request-type catalog.
type RequestTypeInterface interface {
	GetRequestType(ctx context.Context, id int64) (*entities.RequestType, error)
	ListRequestTypes(ctx context.Context) ([]entities.RequestType, error)
}

// ApprovalRequestInterface exposes approval request persistence.
type ApprovalRequestInterface interface {
	// CreateRequest stores a new pending request; timestamps are assigned by the store.
	CreateRequest(ctx context.Context, req entities.ApprovalRequest) (*entities.ApprovalRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*entities.ApprovalRequest, error)
	// ListRequestsByRequester and ListRequestsByApprover return newest first, ties in insertion order.
	ListRequestsByRequester(ctx context.Context, userID int64) ([]entities.ApprovalRequest, error)
	ListRequestsByApprover(ctx context.Context, userID int64) ([]entities.ApprovalRequest, error)
	// DecideRequest checks and applies a decision and appends its audit entry as one atomic unit.
	DecideRequest(ctx context.Context, d entities.Decision) (*entities.ApprovalRequest, *entities.RequestLog, error)
}

// RequestLogInterface exposes the audit log.
type RequestLogInterface interface {
	// ListRequestLogs returns entries newest first.
	ListRequestLogs(ctx context.Context, requestID uuid.UUID) ([]entities.RequestLog, error)
	// LatestRequestLog returns nil without error when the request has no entries.
	LatestRequestLog(ctx context.Context, requestID uuid.UUID) (*entities.RequestLog, error)
}
