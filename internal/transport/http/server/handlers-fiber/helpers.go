package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"approval-workflow/internal/entities"
	"approval-workflow/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := dto.INTERNAL
	msg := "internal error"

	switch {
	case entities.IsNotFound(err):
		status = http.StatusNotFound
		code = dto.NOTFOUND
		msg = err.Error()
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = dto.INVALIDARGUMENT
		msg = err.Error()
	case errors.Is(err, entities.ErrInvalidState):
		status = http.StatusBadRequest
		code = dto.INVALIDSTATE
		msg = err.Error()
	case errors.Is(err, entities.ErrUnauthorized):
		status = http.StatusForbidden
		code = dto.UNAUTHORIZED
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code dto.ErrorCode, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}}
}

// bind parses the JSON body into dst and runs its validation tags.
func (h *Handler) bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: invalid body", entities.ErrInvalidArgument)
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", entities.ErrInvalidArgument, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", entities.ErrInvalidArgument, err)
	}
	return nil
}

func userIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: userId must be an integer", entities.ErrInvalidArgument)
	}
	return id, nil
}

func requestIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: requestId must be a UUID", entities.ErrInvalidArgument)
	}
	return id, nil
}
