package handlers_fiber

import "github.com/gofiber/fiber/v2"

// RegisterHandlers mounts the API routes on router.
func RegisterHandlers(router fiber.Router, h *Handler) {
	api := router.Group("/api")

	api.Get("/users", h.GetUsers)
	api.Get("/request-types", h.GetRequestTypes)

	api.Post("/requests", h.PostRequest)

	requests := api.Group("/requests")
	requests.Get("/hello", h.Hello)
	requests.Get("/created/:userId", h.GetRequestsCreated)
	requests.Get("/assigned/:userId", h.GetRequestsAssigned)
	requests.Get("/:requestId", h.GetRequest)
	requests.Post("/:requestId/approve", h.PostApprove)
	requests.Post("/:requestId/reject", h.PostReject)
}
