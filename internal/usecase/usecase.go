package usecase

import (
	"context"
	"time"

	"approval-workflow/internal/notification"
	"approval-workflow/internal/repository"
	"approval-workflow/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	ApprovalUsecaseInterface
	DirectoryUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	notifier notification.Dispatcher,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, ctx, repo, notifier, timeout)
}
