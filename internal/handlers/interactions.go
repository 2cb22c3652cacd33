package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

// InteractionsHandler acknowledges Slack interactive-component submissions
// (buttons, menus). There is no handling logic yet: this endpoint is an
// extension point, and today it only validates and acknowledges.
type InteractionsHandler struct{}

// NewInteractionsHandler creates a new interactions handler
func NewInteractionsHandler() *InteractionsHandler {
	return &InteractionsHandler{}
}

// HandleInteractions handles the Slack interactivity webhook
// POST /slack/interactions
func (h *InteractionsHandler) HandleInteractions(c *fiber.Ctx) error {
	payload := c.FormValue("payload")
	if payload == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "No payload provided",
		})
	}

	interactionType := gjson.Get(payload, "type").String()
	userID := gjson.Get(payload, "user.id").String()
	log.Printf("🔘 [INTERACTIONS] Acknowledged %q interaction from %s", interactionType, userID)

	return c.JSON(fiber.Map{"status": "ok"})
}
