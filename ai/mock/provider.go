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


package mock

import "github.com/praxisworks/ragchat/ai"

// Provider is a test double for ai.Provider.
// It aggregates mock embedder and chat model instances.
type Provider struct {
	embedder  *Embedder
	chatModel *ChatModel
}

// NewProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetEmbedder()/GetChatModel() to access concrete types for assertions.
func NewProvider() ai.Provider {
	return &Provider{
		embedder:  NewEmbedder(),
		chatModel: NewChatModel(),
	}
}

// NewProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewProviderWithServices(embedder *Embedder, chatModel *ChatModel) ai.Provider {
	return &Provider{
		embedder:  embedder,
		chatModel: chatModel,
	}
}

// Embedder returns the mock embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// ChatModel returns the mock chat model.
func (p *Provider) ChatModel() ai.ChatModel {
	return p.chatModel
}

// Close is a no-op for mock provider.
func (p *Provider) Close() error {
	return nil
}

// GetEmbedder returns the underlying mock embedder for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *Provider) GetEmbedder() *Embedder {
	return p.embedder
}

// GetChatModel returns the underlying mock chat model for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *Provider) GetChatModel() *ChatModel {
	return p.chatModel
}
