package models

// ConversationMessage is a single message in a Slack thread.
// Built per request from thread replies; never persisted.
type ConversationMessage struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// ConversationRequest is the request body for the summarize and
// action-items endpoints.
type ConversationRequest struct {
	Conversation []ConversationMessage `json:"conversation"`
}
