// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"approval-workflow/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the approval API using service layer interfaces.
type Handler struct {
	log      *zap.SugaredLogger
	uc       usecase.InterfaceUsecase
	validate *validator.Validate
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log:      log.Named("http"),
		uc:       usecase,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}
