package services

import (
	"context"
	"log"
	"strings"

	"slackagent/internal/models"
)

// Fallback strings served when the completion backend fails. The bot always
// answers with something; the real failure is logged with its cause.
const (
	FallbackSummary     = "Unable to summarize conversation."
	FallbackActionItems = "Unable to extract action items."
	FallbackSuggestions = "Unable to generate suggestions."
	FallbackDigest      = "Unable to generate daily digest."
)

// Apology replies posted in-thread when event handling fails outright.
const (
	messageApology = "Sorry, I encountered an error processing your message."
	mentionApology = "Sorry, I encountered an error processing your mention."
)

// Completer is the completion-API surface the orchestrators need.
type Completer interface {
	SummarizeConversation(ctx context.Context, conversation []models.ConversationMessage) (string, error)
	ExtractActionItems(ctx context.Context, conversation []models.ConversationMessage) (string, error)
	GenerateSuggestions(ctx context.Context, message string) (string, error)
	GenerateDigest(ctx context.Context, content models.DigestContent) (string, error)
}

// ChatGateway is the Slack surface the orchestrators need.
type ChatGateway interface {
	PostMessage(ctx context.Context, channel, text, threadTS string) error
	ThreadReplies(ctx context.Context, channel, ts string) ([]models.ConversationMessage, error)
	SendDailyDigest(ctx context.Context, channel, digest string) error
}

// TaskStore is the Notion surface the orchestrators need.
type TaskStore interface {
	CreateTask(ctx context.Context, title, description, assignee string) (*models.Task, error)
	DailyDigestContent(ctx context.Context) string
}

// AssistantService is the single orchestration layer behind both the Slack
// webhook path and the plain HTTP path: fetch, complete, deliver.
type AssistantService struct {
	completion Completer
	slack      ChatGateway
	tasks      TaskStore // nil when Notion is not configured
}

// NewAssistantService creates the assistant orchestrator. tasks may be nil,
// which disables action-item task sync.
func NewAssistantService(completion Completer, slack ChatGateway, tasks TaskStore) *AssistantService {
	return &AssistantService{
		completion: completion,
		slack:      slack,
		tasks:      tasks,
	}
}

// Summarize returns the conversation summary, or the fixed fallback string
// when the completion backend fails.
func (s *AssistantService) Summarize(ctx context.Context, conversation []models.ConversationMessage) string {
	summary, err := s.completion.SummarizeConversation(ctx, conversation)
	if err != nil {
		log.Printf("⚠️ [ASSISTANT] Summarize failed, serving fallback: %v", err)
		GetMetrics().RecordCompletion("summarize", "error")
		GetMetrics().RecordFallback("summarize")
		return FallbackSummary
	}
	GetMetrics().RecordCompletion("summarize", "ok")
	return summary
}

// ActionItems returns the extracted action items, or the fixed fallback
// string on failure. When createTasks is set and extraction succeeded, one
// task is created per non-blank output line; blank and whitespace-only lines
// never create records.
func (s *AssistantService) ActionItems(ctx context.Context, conversation []models.ConversationMessage, createTasks bool) string {
	items, err := s.completion.ExtractActionItems(ctx, conversation)
	if err != nil {
		log.Printf("⚠️ [ASSISTANT] Action item extraction failed, serving fallback: %v", err)
		GetMetrics().RecordCompletion("action_items", "error")
		GetMetrics().RecordFallback("action_items")
		return FallbackActionItems
	}
	GetMetrics().RecordCompletion("action_items", "ok")

	if createTasks && s.tasks != nil {
		s.syncActionItems(ctx, items)
	}
	return items
}

// syncActionItems creates one task per non-blank action item line. Failures
// are logged per line; one bad line does not stop the rest.
func (s *AssistantService) syncActionItems(ctx context.Context, items string) {
	for _, line := range strings.Split(items, "\n") {
		item := strings.TrimSpace(line)
		if item == "" {
			continue
		}
		if _, err := s.tasks.CreateTask(ctx, item, "Action item from conversation: "+item, ""); err != nil {
			log.Printf("⚠️ [ASSISTANT] Failed to sync action item %q: %v", item, err)
		}
	}
}

// Suggestions returns suggestions for a mention, or the fixed fallback string.
func (s *AssistantService) Suggestions(ctx context.Context, message string) string {
	suggestions, err := s.completion.GenerateSuggestions(ctx, message)
	if err != nil {
		log.Printf("⚠️ [ASSISTANT] Suggestion generation failed, serving fallback: %v", err)
		GetMetrics().RecordCompletion("suggestions", "error")
		GetMetrics().RecordFallback("suggestions")
		return FallbackSuggestions
	}
	GetMetrics().RecordCompletion("suggestions", "ok")
	return suggestions
}

// HandleMessageEvent processes a posted message: fetch its thread, summarize
// and extract action items, reply in-thread. If the thread cannot be fetched
// a threaded apology is posted instead so the user is never left without a
// reply.
func (s *AssistantService) HandleMessageEvent(ctx context.Context, channel, ts string) {
	conversation, err := s.slack.ThreadReplies(ctx, channel, ts)
	if err != nil {
		log.Printf("⚠️ [ASSISTANT] Failed to fetch thread %s/%s: %v", channel, ts, err)
		s.apologize(ctx, channel, ts, messageApology)
		return
	}

	summary := s.Summarize(ctx, conversation)
	items := s.ActionItems(ctx, conversation, false)

	reply := "*Conversation Summary:*\n" + summary + "\n\n*Action Items:*\n" + items
	if err := s.slack.PostMessage(ctx, channel, reply, ts); err != nil {
		log.Printf("⚠️ [ASSISTANT] Failed to post summary reply: %v", err)
	}
}

// HandleMentionEvent processes an app mention: generate suggestions for the
// mention text and reply in-thread.
func (s *AssistantService) HandleMentionEvent(ctx context.Context, channel, ts, text string) {
	suggestions := s.Suggestions(ctx, text)

	reply := "*Here are some suggestions:*\n" + suggestions
	if err := s.slack.PostMessage(ctx, channel, reply, ts); err != nil {
		log.Printf("⚠️ [ASSISTANT] Failed to post suggestions: %v", err)
		s.apologize(ctx, channel, ts, mentionApology)
	}
}

func (s *AssistantService) apologize(ctx context.Context, channel, ts, text string) {
	if err := s.slack.PostMessage(ctx, channel, text, ts); err != nil {
		log.Printf("⚠️ [ASSISTANT] Failed to post apology: %v", err)
	}
}
