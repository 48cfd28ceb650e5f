package usecase

import (
	"context"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
)

// ApprovalUsecaseInterface abstracts the approval workflow for delivery layer.
type ApprovalUsecaseInterface interface {
	CreateRequest(ctx context.Context, in entities.CreateRequestInput) (*entities.RequestSummary, error)
	ApproveRequest(ctx context.Context, requestID uuid.UUID, comments *string, approverID int64) (*entities.RequestSummary, error)
	RejectRequest(ctx context.Context, requestID uuid.UUID, comments *string, approverID int64) (*entities.RequestSummary, error)
	RequestsCreatedBy(ctx context.Context, userID int64) ([]entities.RequestSummary, error)
	RequestsAssignedTo(ctx context.Context, userID int64) ([]entities.RequestSummary, error)
	RequestDetails(ctx context.Context, requestID uuid.UUID) (*entities.RequestDetails, error)
}

// DirectoryUsecaseInterface abstracts reference data lookups.
type DirectoryUsecaseInterface interface {
	Users(ctx context.Context) ([]entities.User, error)
	RequestTypes(ctx context.Context) ([]entities.RequestType, error)
}
