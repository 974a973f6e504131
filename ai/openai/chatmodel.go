package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/praxisworks/ragchat/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// ChatModel implements ai.ChatModel using OpenAI-compatible chat APIs.
type ChatModel struct {
	client      *openai.LLM
	temperature float64
	logger      *slog.Logger
}

// newChatModel is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newChatModel(config *ai.Config) (*ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &ChatModel{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-chatmodel"),
	}, nil
}

// NewChatModel creates a new chat model using the provided configuration.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	return newChatModel(config)
}

// StreamChat generates a streaming response for the given prompt messages.
// Each produced token is forwarded to onToken; the complete response text is
// returned once the provider signals completion.
func (c *ChatModel) StreamChat(ctx context.Context, messages []ai.ChatMessage, onToken ai.TokenFunc) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		msgType, err := messageType(msg.Role)
		if err != nil {
			return "", err
		}
		content = append(content, llms.TextParts(msgType, msg.Content))
	}

	c.logger.Debug("starting streaming generation", "messages", len(content))

	resp, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(c.temperature),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return onToken(ctx, string(chunk))
		}),
	)
	if err != nil {
		c.logger.Error("streaming generation failed", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("chat model returned no choices")
		return "", errors.New("chat model returned no choices")
	}

	return resp.Choices[0].Content, nil
}

func messageType(role ai.ChatRole) (schema.ChatMessageType, error) {
	switch role {
	case ai.ChatRoleSystem:
		return schema.ChatMessageTypeSystem, nil
	case ai.ChatRoleUser:
		return schema.ChatMessageTypeHuman, nil
	case ai.ChatRoleAssistant:
		return schema.ChatMessageTypeAI, nil
	}
	return "", errors.New("unknown chat role")
}
