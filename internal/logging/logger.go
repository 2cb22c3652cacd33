package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger.
// In production (ENVIRONMENT=production) it uses JSON output for log aggregation.
// Otherwise it uses the human-readable text handler.
func Init() {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// WithDigestRun returns a logger with digest-run context fields attached.
// Use this for all logging within a single digest generation.
func WithDigestRun(runID string) *slog.Logger {
	return slog.With("digest_run_id", runID)
}

// WithEvent returns a logger scoped to one inbound Slack event.
func WithEvent(logger *slog.Logger, eventType, channel string) *slog.Logger {
	return logger.With(
		"event_type", eventType,
		"channel", channel,
	)
}
