package services

import (
	"context"
	"fmt"
	"log"

	"github.com/slack-go/slack"

	"slackagent/internal/models"
)

// SlackService wraps message posting and thread reads against the Slack Web API.
// It holds the one bot-level credential set for the process.
type SlackService struct {
	client *slack.Client
}

// NewSlackService creates a Slack client from the bot token.
func NewSlackService(botToken string) *SlackService {
	return &SlackService{
		client: slack.New(botToken),
	}
}

// PostMessage posts text to a channel, threaded under threadTS when non-empty.
func (s *SlackService) PostMessage(ctx context.Context, channel, text, threadTS string) error {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, _, err := s.client.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		log.Printf("⚠️ [SLACK] Failed to post message to %s: %v", channel, err)
		return fmt.Errorf("%w: post message: %v", models.ErrUnavailable, err)
	}

	GetMetrics().RecordSlackPost()
	return nil
}

// ThreadReplies fetches the thread containing the given message timestamp and
// returns it as conversation messages, root first.
func (s *SlackService) ThreadReplies(ctx context.Context, channel, ts string) ([]models.ConversationMessage, error) {
	msgs, _, _, err := s.client.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: channel,
		Timestamp: ts,
	})
	if err != nil {
		log.Printf("⚠️ [SLACK] Failed to get thread replies for %s/%s: %v", channel, ts, err)
		return nil, fmt.Errorf("%w: conversations.replies: %v", models.ErrUnavailable, err)
	}

	conversation := make([]models.ConversationMessage, 0, len(msgs))
	for _, msg := range msgs {
		conversation = append(conversation, models.ConversationMessage{
			User: msg.User,
			Text: msg.Text,
		})
	}
	return conversation, nil
}

// SendDailyDigest posts the digest to a channel as a plain-text fallback plus
// a single mrkdwn section block carrying the same content.
func (s *SlackService) SendDailyDigest(ctx context.Context, channel, digest string) error {
	text := "*Daily Digest*\n" + digest

	section := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
		nil, nil,
	)

	_, _, err := s.client.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(section),
	)
	if err != nil {
		log.Printf("⚠️ [SLACK] Failed to send daily digest to %s: %v", channel, err)
		return fmt.Errorf("%w: send daily digest: %v", models.ErrUnavailable, err)
	}

	GetMetrics().RecordSlackPost()
	log.Printf("📨 [SLACK] Daily digest sent to #%s", channel)
	return nil
}
