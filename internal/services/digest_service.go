package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"slackagent/internal/logging"
	"slackagent/internal/models"
)

// Placeholder until an email source is integrated.
const emailsPlaceholder = "Email integration to be implemented"

// CalendarSource provides the calendar section of the daily digest.
type CalendarSource interface {
	DailyDigestContent(ctx context.Context) string
}

// DigestService composes the daily digest: gather same-day content from the
// task store and the calendar, synthesize it through the completion API, and
// optionally post the result to a fixed channel.
type DigestService struct {
	completion Completer
	slack      ChatGateway
	tasks      TaskStore      // nil when Notion is not configured
	calendar   CalendarSource // nil when Calendar is not configured

	channel     string
	postEnabled bool
}

// NewDigestService creates the digest composer. tasks and calendar may be
// nil; their sections then degrade to a fixed unavailable line.
func NewDigestService(completion Completer, slack ChatGateway, tasks TaskStore, calendar CalendarSource, channel string, postEnabled bool) *DigestService {
	return &DigestService{
		completion:  completion,
		slack:       slack,
		tasks:       tasks,
		calendar:    calendar,
		channel:     channel,
		postEnabled: postEnabled,
	}
}

// BuildContent gathers the digest sections. Sources are independent; a
// missing or failing source yields its unavailable line, never an error.
func (s *DigestService) BuildContent(ctx context.Context) models.DigestContent {
	content := models.DigestContent{
		Emails:     emailsPlaceholder,
		NotionDocs: "Unable to fetch Notion updates.",
		Meetings:   "Unable to fetch calendar events.",
	}
	if s.tasks != nil {
		content.NotionDocs = s.tasks.DailyDigestContent(ctx)
	}
	if s.calendar != nil {
		content.Meetings = s.calendar.DailyDigestContent(ctx)
	}
	return content
}

// GenerateDailyDigest builds the digest text and, when posting is enabled,
// sends it to the configured channel. Always returns a non-empty digest:
// the fixed fallback string stands in when synthesis fails.
func (s *DigestService) GenerateDailyDigest(ctx context.Context) string {
	runID := uuid.New().String()
	logger := logging.WithDigestRun(runID)

	content := s.BuildContent(ctx)

	digest, err := s.completion.GenerateDigest(ctx, content)
	if err != nil {
		log.Printf("⚠️ [DIGEST] Synthesis failed (run %s), serving fallback: %v", runID, err)
		GetMetrics().RecordCompletion("digest", "error")
		GetMetrics().RecordFallback("digest")
		GetMetrics().RecordDigestRun("fallback")
		digest = FallbackDigest
	} else {
		GetMetrics().RecordCompletion("digest", "ok")
		GetMetrics().RecordDigestRun("ok")
	}

	if s.postEnabled {
		if err := s.slack.SendDailyDigest(ctx, s.channel, digest); err != nil {
			logger.Warn("digest generated but posting failed", "channel", s.channel, "error", err)
		} else {
			logger.Info("daily digest posted", "channel", s.channel)
		}
	}

	return digest
}
