package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/praxisworks/ragchat/ai"
)

// ChatModel is a test double for ai.ChatModel.
// By default it streams a fixed response token by token.
type ChatModel struct {
	// Tokens is the scripted token stream. If empty, the response is
	// "mock response" split into words.
	Tokens []string

	// StreamChatFunc is called by StreamChat if set, replacing the default
	// scripted behavior entirely.
	StreamChatFunc func(ctx context.Context, messages []ai.ChatMessage, onToken ai.TokenFunc) (string, error)

	// Err, if set, is returned after streaming FailAfter tokens.
	// With FailAfter == 0 the call fails before producing any token.
	Err       error
	FailAfter int

	mu           sync.Mutex
	callCount    int
	lastMessages []ai.ChatMessage
}

// NewChatModel creates a mock chat model with default scripted behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewChatModel() *ChatModel {
	return &ChatModel{}
}

// StreamChat streams the scripted tokens through onToken and returns the
// accumulated response.
func (m *ChatModel) StreamChat(ctx context.Context, messages []ai.ChatMessage, onToken ai.TokenFunc) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastMessages = append([]ai.ChatMessage(nil), messages...)
	m.mu.Unlock()

	if m.StreamChatFunc != nil {
		return m.StreamChatFunc(ctx, messages, onToken)
	}

	tokens := m.Tokens
	if len(tokens) == 0 {
		tokens = []string{"mock ", "response"}
	}

	var response strings.Builder
	for i, token := range tokens {
		if m.Err != nil && i >= m.FailAfter {
			return "", m.Err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := onToken(ctx, token); err != nil {
			return "", err
		}
		response.WriteString(token)
	}
	if m.Err != nil && m.FailAfter >= len(tokens) {
		return "", m.Err
	}

	return response.String(), nil
}

// CallCount returns the number of StreamChat invocations.
func (m *ChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastMessages returns the prompt passed to the most recent invocation.
func (m *ChatModel) LastMessages() []ai.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMessages
}

// Reset clears recorded calls and injected behavior.
func (m *ChatModel) Reset() {
	m.mu.Lock()
	m.callCount = 0
	m.lastMessages = nil
	m.mu.Unlock()
	m.Tokens = nil
	m.StreamChatFunc = nil
	m.Err = nil
	m.FailAfter = 0
}
