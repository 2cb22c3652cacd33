package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"slackagent/internal/models"
)

// CalendarService wraps event listing and creation against the primary
// Google Calendar of the authenticated account. Initialized once per process
// from a client-secret file plus a persisted token cache.
type CalendarService struct {
	service *calendar.Service
	clock   func() time.Time
}

// NewCalendarService builds the calendar client. The cached token is loaded
// from tokenFile when present; an expired token refreshes through the token
// source and the rewrite is persisted. Without a cached token the interactive
// authorization flow runs on stdin/stdout and the result is saved.
func NewCalendarService(ctx context.Context, credentialsFile, tokenFile string) (*CalendarService, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("authorization flow failed: %w", err)
		}
		if err := saveToken(tokenFile, tok); err != nil {
			log.Printf("⚠️ [CALENDAR] Failed to persist token cache: %v", err)
		}
	}

	// Token refreshes rewrite the cache file; the saving source serializes
	// refreshes so concurrent requests cannot race on the file.
	ts := &savingTokenSource{
		src:  config.TokenSource(ctx, tok),
		path: tokenFile,
		last: tok.AccessToken,
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &CalendarService{
		service: srv,
		clock:   func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateEvent creates an event on the primary calendar, with attendees added
// by email when provided.
func (s *CalendarService) CreateEvent(ctx context.Context, summary, description string, start, end time.Time, attendees []string) (*models.CalendarEvent, error) {
	event := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}

	for _, email := range attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := s.service.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		log.Printf("⚠️ [CALENDAR] Failed to create event %q: %v", summary, err)
		return nil, fmt.Errorf("%w: create event: %v", models.ErrUnavailable, err)
	}

	log.Printf("📅 [CALENDAR] Created event %q (%s)", summary, created.Id)
	return eventFromAPI(created), nil
}

// TodaysEvents lists events between now (UTC) and 23:59:59 UTC of the same
// calendar day. Events earlier in the day are excluded; the window starts at
// the current moment, not midnight.
func (s *CalendarService) TodaysEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	start, end := TodayWindow(s.clock())

	result, err := s.service.Events.List("primary").
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("⚠️ [CALENDAR] Failed to list today's events: %v", err)
		return nil, fmt.Errorf("%w: list events: %v", models.ErrUnavailable, err)
	}

	events := make([]models.CalendarEvent, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, *eventFromAPI(item))
	}
	return events, nil
}

// DailyDigestContent renders today's events for the daily digest, one
// "- <summary> (<start>)" line per event under a fixed header.
func (s *CalendarService) DailyDigestContent(ctx context.Context) string {
	events, err := s.TodaysEvents(ctx)
	if err != nil {
		return "Unable to fetch calendar events."
	}

	var b strings.Builder
	b.WriteString("Today's Calendar Events:\n")
	for _, event := range events {
		summary := event.Summary
		if summary == "" {
			summary = "Untitled Event"
		}
		b.WriteString(fmt.Sprintf("- %s (%s)\n", summary, event.Start))
	}
	return b.String()
}

// TodayWindow computes the digest window for the given instant: from that
// instant through 23:59:59 of the same UTC day.
func TodayWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	return now, end
}

func eventFromAPI(item *calendar.Event) *models.CalendarEvent {
	event := &models.CalendarEvent{
		ID:      item.Id,
		Summary: item.Summary,
	}
	if item.Start != nil {
		// All-day events carry a date instead of a dateTime
		event.Start = item.Start.DateTime
		if event.Start == "" {
			event.Start = item.Start.Date
		}
	}
	if item.End != nil {
		event.End = item.End.DateTime
		if event.End == "" {
			event.End = item.End.Date
		}
	}
	for _, a := range item.Attendees {
		event.Attendees = append(event.Attendees, a.Email)
	}
	return event
}

// savingTokenSource persists refreshed tokens back to the cache file.
// The mutex serializes concurrent refreshes from parallel requests.
type savingTokenSource struct {
	mu   sync.Mutex
	src  oauth2.TokenSource
	path string
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	if tok.AccessToken != s.last {
		if err := saveToken(s.path, tok); err != nil {
			log.Printf("⚠️ [CALENDAR] Failed to persist refreshed token: %v", err)
		} else {
			log.Printf("🔄 [CALENDAR] Token refreshed and cache updated")
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// tokenFromWeb runs the interactive authorization flow: print the consent
// URL, read the code back from stdin, exchange it for a token.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
