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

package ragchat

import (
	"log/slog"

	"github.com/praxisworks/ragchat/ai"
	"github.com/praxisworks/ragchat/ai/openai"
	"github.com/praxisworks/ragchat/bots"
	"github.com/praxisworks/ragchat/chat"
	"github.com/praxisworks/ragchat/ingestion"
	"github.com/praxisworks/ragchat/session"
	"github.com/praxisworks/ragchat/storage"
	"github.com/praxisworks/ragchat/storage/badger"
)

// Service owns the full chat stack: the storage backend, repositories, AI
// provider, session memory, bot registry, ingestion pipeline, and chat
// engine, wired together and torn down as one unit.
type Service struct {
	backend  *badger.Backend
	botRepo  storage.BotRepository
	vectors  storage.VectorRepository
	provider ai.Provider
	memory   *session.Store
	registry *bots.Registry
	pipeline *ingestion.Pipeline
	engine   *chat.Engine
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the configuration used to build the OpenAI-compatible
// provider.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a prebuilt AI provider instead of constructing one
// from configuration.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all storage in memory. Useful for tests and
// throwaway environments.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// NewService opens the storage backend at filePath and wires the full stack.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	botRepo, err := badger.NewBotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vectors, err := badger.NewVectorRepository(backend)
	if err != nil {
		botRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			vectors.Close()
			botRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	registry, err := bots.NewRegistry(botRepo, vectors)
	if err != nil {
		provider.Close()
		vectors.Close()
		botRepo.Close()
		backend.Close()
		return nil, err
	}

	pipeline, err := ingestion.NewPipeline(registry, vectors, provider.Embedder())
	if err != nil {
		provider.Close()
		vectors.Close()
		botRepo.Close()
		backend.Close()
		return nil, err
	}

	memory := session.NewStore()
	engine, err := chat.NewEngine(registry, vectors, provider, memory)
	if err != nil {
		pipeline.Close()
		provider.Close()
		vectors.Close()
		botRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:  backend,
		botRepo:  botRepo,
		vectors:  vectors,
		provider: provider,
		memory:   memory,
		registry: registry,
		pipeline: pipeline,
		engine:   engine,
		logger:   slog.Default(),
	}, nil
}

// Close tears the stack down in reverse construction order.
func (s *Service) Close() error {
	if err := s.pipeline.Close(); err != nil {
		s.logger.Error("error closing ingestion pipeline", "err", err)
	}
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.vectors.Close(); err != nil {
		s.logger.Error("error closing vector repository", "err", err)
		return err
	}
	if err := s.botRepo.Close(); err != nil {
		s.logger.Error("error closing bot repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Registry returns the bot registry.
func (s *Service) Registry() *bots.Registry {
	return s.registry
}

// Pipeline returns the document ingestion pipeline.
func (s *Service) Pipeline() *ingestion.Pipeline {
	return s.pipeline
}

// Engine returns the chat engine.
func (s *Service) Engine() *chat.Engine {
	return s.engine
}

// Memory returns the session memory store.
func (s *Service) Memory() *session.Store {
	return s.memory
}
