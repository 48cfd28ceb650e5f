package handlers_fiber

import (
	"net/http"

	"approval-workflow/internal/mapper"
	"approval-workflow/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// Hello answers the liveness probe used by the frontend.
func (h *Handler) Hello(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).SendString("Hello from the approval workflow service")
}

// PostRequest opens a new approval request.
func (h *Handler) PostRequest(c *fiber.Ctx) error {
	var body dto.CreateRequestBody
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	summary, err := h.uc.CreateRequest(c.Context(), mapper.FromCreateRequestBody(body))
	if err != nil {
		h.log.Infow("failed to create request", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToSummary(*summary))
}

// GetRequestsCreated lists the requests a user has opened.
func (h *Handler) GetRequestsCreated(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	list, err := h.uc.RequestsCreatedBy(c.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to list created requests", "error", err.Error(), "user_id", userID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToSummaryList(list))
}

// GetRequestsAssigned lists the requests waiting on a user's decision.
func (h *Handler) GetRequestsAssigned(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	list, err := h.uc.RequestsAssignedTo(c.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to list assigned requests", "error", err.Error(), "user_id", userID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToSummaryList(list))
}

// GetRequest returns the details of one request.
func (h *Handler) GetRequest(c *fiber.Ctx) error {
	id, err := requestIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	details, err := h.uc.RequestDetails(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDetails(*details))
}

// PostApprove approves a pending request.
func (h *Handler) PostApprove(c *fiber.Ctx) error {
	return h.decide(c, true)
}

// PostReject rejects a pending request.
func (h *Handler) PostReject(c *fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *Handler) decide(c *fiber.Ctx, approve bool) error {
	id, err := requestIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var body dto.DecisionBody
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	decide := h.uc.RejectRequest
	if approve {
		decide = h.uc.ApproveRequest
	}
	summary, err := decide(c.Context(), id, body.Comments, body.ApproverID)
	if err != nil {
		h.log.Infow("decision refused", "error", err.Error(), "request_id", id, "approver_id", body.ApproverID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToSummary(*summary))
}
