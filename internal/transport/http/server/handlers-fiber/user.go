package handlers_fiber

import (
	"net/http"

	"approval-workflow/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetUsers returns the user directory.
func (h *Handler) GetUsers(c *fiber.Ctx) error {
	users, err := h.uc.Users(c.Context())
	if err != nil {
		h.log.Errorw("failed to list users", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToUserList(users))
}

// GetRequestTypes returns the request-type catalog.
func (h *Handler) GetRequestTypes(c *fiber.Ctx) error {
	types, err := h.uc.RequestTypes(c.Context())
	if err != nil {
		h.log.Errorw("failed to list request types", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToRequestTypeList(types))
}
