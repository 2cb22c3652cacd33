package models

// CalendarEvent is a Google Calendar event as this service sees it.
// Start keeps the raw RFC3339 string (or all-day date) the API returned.
type CalendarEvent struct {
	ID        string   `json:"id"`
	Summary   string   `json:"summary"`
	Start     string   `json:"start"`
	End       string   `json:"end,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
}
