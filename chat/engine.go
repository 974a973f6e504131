// Copyright 2026 Praxis Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/praxisworks/ragchat/ai"
	"github.com/praxisworks/ragchat/bots"
	"github.com/praxisworks/ragchat/core"
	"github.com/praxisworks/ragchat/session"
	"github.com/praxisworks/ragchat/storage"
)

// DefaultTopK is the number of chunks retrieved per grounded question.
const DefaultTopK = 4

// Engine produces streaming chat responses, optionally grounded in a bot's
// document index.
//
// A grounded turn embeds the user's question, retrieves the nearest chunks
// from the bot's index, and folds them into the system prompt. Session
// history is read before generation and appended only after the response
// completes cleanly, so an interrupted response never pollutes the
// conversation log.
type Engine struct {
	registry *bots.Registry
	vectors  storage.VectorRepository
	embedder ai.Embedder
	model    ai.ChatModel
	memory   *session.Store
	topK     int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopK sets how many chunks are retrieved per grounded question.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a chat engine over the given registry, vector
// repository, AI provider, and session memory.
func NewEngine(registry *bots.Registry, vectors storage.VectorRepository, provider ai.Provider, memory *session.Store, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if vectors == nil {
		return nil, ErrVectorsRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if memory == nil {
		return nil, ErrMemoryRequired
	}

	e := &Engine{
		registry: registry,
		vectors:  vectors,
		embedder: provider.Embedder(),
		model:    provider.ChatModel(),
		memory:   memory,
		topK:     DefaultTopK,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "chat")
	return e, nil
}

// ChatStream starts generating a response to the user's message and returns
// the stream immediately.
//
// A blank message is rejected with core.ErrEmptyInput before any model or
// index access. An empty sessionID starts a fresh session; the assigned ID
// is available via Stream.SessionID. An empty botID produces a plain,
// ungrounded response; otherwise the bot must exist and its index is
// consulted for context.
func (e *Engine) ChatStream(ctx context.Context, botID, sessionID, message string) (*Stream, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, core.ErrEmptyInput
	}

	if sessionID == "" {
		sessionID = core.NewSessionID()
	}
	e.memory.GetOrCreate(sessionID)
	history := e.memory.History(sessionID)

	systemPrompt := plainSystemPrompt
	if botID != "" {
		contextBlock, err := e.retrieve(ctx, botID, trimmed)
		if err != nil {
			return nil, err
		}
		systemPrompt = fmt.Sprintf(groundedSystemPrompt, contextBlock)
	}

	messages := buildMessages(systemPrompt, history, trimmed)
	stream := newStream(sessionID)
	go e.generate(ctx, stream, messages, trimmed)
	return stream, nil
}

// retrieve embeds the question and renders the bot's nearest chunks into a
// context block. The bot must exist; retrieval failures are reported as
// core.ErrRetrieval.
func (e *Engine) retrieve(ctx context.Context, botID, question string) (string, error) {
	if _, err := e.registry.Get(ctx, botID); err != nil {
		return "", err
	}

	vector, err := e.embedder.EmbedText(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: embedding question: %w", core.ErrRetrieval, err)
	}
	hits, err := e.vectors.Search(ctx, botID, vector, e.topK)
	if err != nil {
		return "", fmt.Errorf("%w: searching index: %w", core.ErrRetrieval, err)
	}

	e.logger.Debug("retrieved context", "bot_id", botID, "chunks", len(hits))
	return buildContext(hits), nil
}

// generate runs the model in the stream's producer goroutine. Session
// memory records the turn only when generation and fragment delivery both
// complete without error.
func (e *Engine) generate(ctx context.Context, stream *Stream, messages []ai.ChatMessage, userMessage string) {
	var buf fragmentBuffer

	onToken := func(ctx context.Context, token string) error {
		fragment, ok := buf.add(token)
		if !ok {
			return nil
		}
		select {
		case stream.fragments <- fragment:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	text, err := e.model.StreamChat(ctx, messages, onToken)
	if err != nil {
		e.logger.Error("generation failed", "session_id", stream.sessionID, "error", err)
		stream.finish(text, fmt.Errorf("%w: %w", core.ErrProvider, err))
		return
	}

	if fragment, ok := buf.flush(); ok {
		select {
		case stream.fragments <- fragment:
		case <-ctx.Done():
			stream.finish(text, ctx.Err())
			return
		}
	}

	e.memory.AppendTurn(stream.sessionID, userMessage, text)
	stream.finish(text, nil)
}
