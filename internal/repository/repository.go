// Package repository provides factory for repositories.
package repository

import (
	"context"
	"fmt"

	"approval-workflow/config"
	"approval-workflow/internal/repository/memory"
	"approval-workflow/internal/repository/postgres"

	"go.uber.org/zap"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	UserInterface
	RequestTypeInterface
	ApprovalRequestInterface
	RequestLogInterface
}

// New constructs repository backend by name.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config) (Repository, error) {
	switch name {
	case "postgres":
		return postgres.New(ctx, log, cfg), nil
	case "memory":
		return memory.New(log, memory.WithReferenceData(memory.DemoUsers(), memory.DemoRequestTypes())), nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}
