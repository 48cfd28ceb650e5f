package domain

import (
	"context"

	"approval-workflow/internal/entities"
)

// Users returns the user directory.
func (u *Usecase) Users(ctx context.Context) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.ListUsers(ctx)
}

// RequestTypes returns the request-type catalog.
func (u *Usecase) RequestTypes(ctx context.Context) ([]entities.RequestType, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.ListRequestTypes(ctx)
}
