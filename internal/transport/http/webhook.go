// internal/transport/http/webhook.go
package http

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// GithubWebhookHealth answers GET on the webhook path with a fixed
// acknowledgement so the endpoint can be pinged without touching data.
func (h *Handler) GithubWebhookHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}

// GithubWebhook ingests a push event. No signature verification is performed
// on the inbound payload; the endpoint trusts its caller.
func (h *Handler) GithubWebhook(c *fiber.Ctx) error {
	result, err := h.syncService.HandlePushEvent(c.Context(), c.Body())
	if err != nil {
		log.Printf("❌ [WEBHOOK] Failed to process event: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
