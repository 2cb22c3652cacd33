package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/slack-go/slack/slackevents"
)

// Assistant is the orchestration surface the Slack event handlers dispatch to.
type Assistant interface {
	HandleMessageEvent(ctx context.Context, channel, ts string)
	HandleMentionEvent(ctx context.Context, channel, ts, text string)
}

// SlackEventsHandler receives Slack Events API payloads and dispatches them.
// Unrecognized events are acknowledged, never rejected.
type SlackEventsHandler struct {
	assistant Assistant
}

// NewSlackEventsHandler creates a new Slack events handler
func NewSlackEventsHandler(assistant Assistant) *SlackEventsHandler {
	return &SlackEventsHandler{assistant: assistant}
}

// HandleEvents handles the Slack events webhook
// POST /slack/events
func (h *SlackEventsHandler) HandleEvents(c *fiber.Ctx) error {
	body := c.Body()

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		// Unrecognized event types are still acknowledged; only payloads
		// that are not valid JSON get rejected.
		if json.Valid(body) {
			log.Printf("ℹ️ [EVENTS] Acknowledging unparseable event: %v", err)
			return c.JSON(fiber.Map{"status": "ok"})
		}
		log.Printf("⚠️ [EVENTS] Failed to parse event payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid event payload: " + err.Error(),
		})
	}

	// URL verification handshake: echo the challenge back verbatim.
	if eventsAPIEvent.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "invalid challenge payload: " + err.Error(),
			})
		}
		return c.JSON(fiber.Map{"challenge": challenge.Challenge})
	}

	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		h.dispatch(eventsAPIEvent.InnerEvent)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// dispatch routes a callback event to its handler. Bot-authored messages are
// skipped so the bot never summarizes its own replies.
func (h *SlackEventsHandler) dispatch(inner slackevents.EventsAPIInnerEvent) {
	ctx := context.Background()

	switch event := inner.Data.(type) {
	case *slackevents.MessageEvent:
		if event.BotID != "" || event.SubType != "" {
			return
		}
		log.Printf("💬 [EVENTS] Message event in %s at %s", event.Channel, event.TimeStamp)
		h.assistant.HandleMessageEvent(ctx, event.Channel, event.TimeStamp)

	case *slackevents.AppMentionEvent:
		log.Printf("👋 [EVENTS] App mention in %s at %s", event.Channel, event.TimeStamp)
		h.assistant.HandleMentionEvent(ctx, event.Channel, event.TimeStamp, event.Text)

	default:
		// Unrecognized event types are acknowledged without handling.
		log.Printf("ℹ️ [EVENTS] Ignoring event type %q", inner.Type)
	}
}
