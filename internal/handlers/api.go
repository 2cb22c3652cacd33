package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"slackagent/internal/models"
)

// ConversationAssistant is the orchestration surface behind the plain HTTP
// API. Both methods always return a usable string; backend failures surface
// as the fixed fallback text, not as errors.
type ConversationAssistant interface {
	Summarize(ctx context.Context, conversation []models.ConversationMessage) string
	ActionItems(ctx context.Context, conversation []models.ConversationMessage, createTasks bool) string
}

// DigestComposer generates the daily digest text.
type DigestComposer interface {
	GenerateDailyDigest(ctx context.Context) string
}

// APIHandler exposes summarize, action-items and digest as request/response
// endpoints, independent of the Slack webhook path.
type APIHandler struct {
	assistant ConversationAssistant
	digest    DigestComposer
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(assistant ConversationAssistant, digest DigestComposer) *APIHandler {
	return &APIHandler{
		assistant: assistant,
		digest:    digest,
	}
}

// Summarize summarizes a conversation
// POST /api/summarize
func (h *APIHandler) Summarize(c *fiber.Ctx) error {
	var req models.ConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body: " + err.Error(),
		})
	}

	summary := h.assistant.Summarize(c.Context(), req.Conversation)
	return c.JSON(fiber.Map{"summary": summary})
}

// ActionItems extracts action items from a conversation and syncs one task
// per non-blank line to the task store
// POST /api/action-items
func (h *APIHandler) ActionItems(c *fiber.Ctx) error {
	var req models.ConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body: " + err.Error(),
		})
	}

	items := h.assistant.ActionItems(c.Context(), req.Conversation, true)
	return c.JSON(fiber.Map{"action_items": items})
}

// Digest generates the daily digest
// GET /api/digest
func (h *APIHandler) Digest(c *fiber.Ctx) error {
	log.Printf("📰 [API] Daily digest requested")
	digest := h.digest.GenerateDailyDigest(c.Context())
	return c.JSON(fiber.Map{"digest": digest})
}
