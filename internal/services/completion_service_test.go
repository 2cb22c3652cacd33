package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slackagent/internal/models"
)

func completionBackend(t *testing.T, reply string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %q", auth)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if capture != nil && len(req.Messages) == 2 {
			*capture = req.Messages[1].Content
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
}

func TestCompletionService_SummarizeConversation(t *testing.T) {
	var prompt string
	server := completionBackend(t, "A short summary.", &prompt)
	defer server.Close()

	svc := NewCompletionService("test-key", server.URL, "gpt-4")

	conversation := []models.ConversationMessage{
		{User: "u1", Text: "Hello team!"},
		{User: "u2", Text: "Hi there!"},
	}

	summary, err := svc.SummarizeConversation(context.Background(), conversation)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary != "A short summary." {
		t.Errorf("Expected summary from first choice, got %q", summary)
	}

	if !strings.Contains(prompt, "u1: Hello team!") || !strings.Contains(prompt, "u2: Hi there!") {
		t.Errorf("Conversation not rendered as author: text lines, got %q", prompt)
	}
}

func TestCompletionService_GenerateDigest(t *testing.T) {
	var prompt string
	server := completionBackend(t, "Your digest.", &prompt)
	defer server.Close()

	svc := NewCompletionService("test-key", server.URL, "gpt-4")

	digest, err := svc.GenerateDigest(context.Background(), models.DigestContent{
		Emails:     "no new email",
		NotionDocs: "two docs updated",
		Meetings:   "standup at 10",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if digest != "Your digest." {
		t.Errorf("Expected digest text, got %q", digest)
	}

	for _, section := range []string{"Emails: no new email", "Notion Docs: two docs updated", "Meetings: standup at 10"} {
		if !strings.Contains(prompt, section) {
			t.Errorf("Digest prompt missing section %q: %q", section, prompt)
		}
	}
}

func TestCompletionService_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream on fire", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewCompletionService("test-key", server.URL, "gpt-4")

	_, err := svc.SummarizeConversation(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected error from failing backend")
	}
	if !errors.Is(err, models.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestCompletionService_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	svc := NewCompletionService("test-key", server.URL, "gpt-4")

	_, err := svc.GenerateSuggestions(context.Background(), "what next?")
	if !errors.Is(err, models.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable for empty choices, got %v", err)
	}
}

func TestFormatConversation_UnknownAuthor(t *testing.T) {
	got := formatConversation([]models.ConversationMessage{
		{User: "", Text: "who said this?"},
	})
	if got != "Unknown: who said this?" {
		t.Errorf("Expected Unknown author fallback, got %q", got)
	}
}
