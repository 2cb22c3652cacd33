package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"slackagent/internal/models"
)

// System prompts for each completion operation.
const (
	summarizeSystemPrompt   = "You are a helpful assistant that summarizes conversations concisely."
	actionItemsSystemPrompt = "You are a helpful assistant that extracts action items from conversations. Format them as a bulleted list."
	suggestionsSystemPrompt = "You are a helpful assistant that provides relevant suggestions based on the context."
	digestSystemPrompt      = "You are a helpful assistant that creates concise daily digests."
)

// CompletionService calls an OpenAI-compatible chat-completions endpoint.
// It holds the only explicit timeout and connection pool in the system.
type CompletionService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewCompletionService creates a completion client with a fixed 30s request
// timeout and a bounded connection pool.
func NewCompletionService(apiKey, baseURL, model string) *CompletionService {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &CompletionService{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// SummarizeConversation asks the model for a concise summary of a Slack thread.
func (s *CompletionService) SummarizeConversation(ctx context.Context, conversation []models.ConversationMessage) (string, error) {
	prompt := "Please summarize this conversation:\n" + formatConversation(conversation)
	return s.complete(ctx, summarizeSystemPrompt, prompt)
}

// ExtractActionItems asks the model for a bulleted list of action items.
func (s *CompletionService) ExtractActionItems(ctx context.Context, conversation []models.ConversationMessage) (string, error) {
	prompt := "Please extract action items from this conversation:\n" + formatConversation(conversation)
	return s.complete(ctx, actionItemsSystemPrompt, prompt)
}

// GenerateSuggestions asks the model for suggestions in response to a mention.
func (s *CompletionService) GenerateSuggestions(ctx context.Context, message string) (string, error) {
	prompt := "Please provide suggestions for this message: " + message
	return s.complete(ctx, suggestionsSystemPrompt, prompt)
}

// GenerateDigest asks the model to synthesize the daily digest from the
// aggregated source content.
func (s *CompletionService) GenerateDigest(ctx context.Context, content models.DigestContent) (string, error) {
	prompt := fmt.Sprintf("Please create a daily digest from this content:\nEmails: %s\nNotion Docs: %s\nMeetings: %s",
		content.Emails, content.NotionDocs, content.Meetings)
	return s.complete(ctx, digestSystemPrompt, prompt)
}

// formatConversation renders thread messages as "<author>: <text>" lines.
func formatConversation(conversation []models.ConversationMessage) string {
	lines := make([]string, 0, len(conversation))
	for _, msg := range conversation {
		user := msg.User
		if user == "" {
			user = "Unknown"
		}
		lines = append(lines, user+": "+msg.Text)
	}
	return strings.Join(lines, "\n")
}

// complete issues one chat-completion request and returns the first choice.
func (s *CompletionService) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"stream": false,
	}

	reqBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("⚠️ [COMPLETION] Request failed: %v", err)
		return "", fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", models.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ [COMPLETION] API error (status %d): %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: API error (status %d)", models.ErrUnavailable, resp.StatusCode)
	}

	var apiResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", fmt.Errorf("%w: failed to parse API response: %v", models.ErrUnavailable, err)
	}

	if len(apiResponse.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in completion response", models.ErrUnavailable)
	}

	return apiResponse.Choices[0].Message.Content, nil
}
