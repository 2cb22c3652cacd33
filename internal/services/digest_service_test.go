package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"slackagent/internal/models"
)

type stubCalendar struct {
	content string
}

func (s *stubCalendar) DailyDigestContent(ctx context.Context) string {
	return s.content
}

func TestDigest_BuildContent_AllSources(t *testing.T) {
	tasks := &stubTasks{content: "Recent Notion Updates:\n- Roadmap\n"}
	calendar := &stubCalendar{content: "Today's Calendar Events:\n- Standup (2026-09-01T10:00:00Z)\n"}
	svc := NewDigestService(&stubCompleter{}, &stubChat{}, tasks, calendar, "general", false)

	content := svc.BuildContent(context.Background())

	if content.NotionDocs != tasks.content {
		t.Errorf("Unexpected notion content: %q", content.NotionDocs)
	}
	if content.Meetings != calendar.content {
		t.Errorf("Unexpected calendar content: %q", content.Meetings)
	}
	if content.Emails != emailsPlaceholder {
		t.Errorf("Expected email placeholder, got %q", content.Emails)
	}
}

func TestDigest_BuildContent_MissingSources(t *testing.T) {
	svc := NewDigestService(&stubCompleter{}, &stubChat{}, nil, nil, "general", false)

	content := svc.BuildContent(context.Background())

	if content.NotionDocs != "Unable to fetch Notion updates." {
		t.Errorf("Unexpected notion fallback: %q", content.NotionDocs)
	}
	if content.Meetings != "Unable to fetch calendar events." {
		t.Errorf("Unexpected calendar fallback: %q", content.Meetings)
	}
}

func TestDigest_GenerateDailyDigest_PostsWhenEnabled(t *testing.T) {
	chat := &stubChat{}
	completer := &stubCompleter{digest: "Quiet day: one doc, one meeting."}
	svc := NewDigestService(completer, chat, nil, nil, "general", true)

	digest := svc.GenerateDailyDigest(context.Background())

	if digest != "Quiet day: one doc, one meeting." {
		t.Errorf("Unexpected digest: %q", digest)
	}
	if len(chat.digests) != 1 {
		t.Fatalf("Expected digest posted once, got %d", len(chat.digests))
	}
	if chat.digests[0].Channel != "general" {
		t.Errorf("Expected digest posted to #general, got %q", chat.digests[0].Channel)
	}
}

func TestDigest_GenerateDailyDigest_SilentWhenDisabled(t *testing.T) {
	chat := &stubChat{}
	svc := NewDigestService(&stubCompleter{digest: "d"}, chat, nil, nil, "general", false)

	svc.GenerateDailyDigest(context.Background())

	if len(chat.digests) != 0 {
		t.Errorf("Expected no digest posted when disabled, got %d", len(chat.digests))
	}
}

func TestDigest_GenerateDailyDigest_FallbackOnError(t *testing.T) {
	svc := NewDigestService(&stubCompleter{err: models.ErrUnavailable}, &stubChat{}, nil, nil, "general", false)

	digest := svc.GenerateDailyDigest(context.Background())

	if digest != FallbackDigest {
		t.Errorf("Expected digest fallback, got %q", digest)
	}
}

func TestTodayWindow(t *testing.T) {
	// At 23:00 UTC the window covers only the last hour of the day: events
	// earlier the same day fall before the window start.
	now := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
	start, end := TodayWindow(now)

	if !start.Equal(now) {
		t.Errorf("Window must start at the current instant, got %v", start)
	}
	if want := time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC); !end.Equal(want) {
		t.Errorf("Window must end at 23:59:59 the same day, got %v", end)
	}

	earlier := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	if !earlier.Before(start) {
		t.Error("A 09:30 event must fall outside a window computed at 23:00")
	}
}

func TestTodayWindow_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2026, 9, 2, 1, 0, 0, 0, loc) // 23:00 UTC on Sep 1
	start, end := TodayWindow(now)

	if start.Day() != 1 || end.Day() != 1 {
		t.Errorf("Window must be computed on the UTC day, got start=%v end=%v", start, end)
	}
	if !strings.HasPrefix(end.Format(time.RFC3339), "2026-09-01T23:59:59") {
		t.Errorf("Unexpected window end: %v", end)
	}
}
