package chat

import "errors"

var (
	// ErrRegistryRequired is returned when an engine is constructed without
	// a bot registry.
	ErrRegistryRequired = errors.New("chat: bot registry is required")
	// ErrVectorsRequired is returned when an engine is constructed without
	// a vector repository.
	ErrVectorsRequired = errors.New("chat: vector repository is required")
	// ErrProviderRequired is returned when an engine is constructed without
	// an AI provider.
	ErrProviderRequired = errors.New("chat: ai provider is required")
	// ErrMemoryRequired is returned when an engine is constructed without a
	// session memory store.
	ErrMemoryRequired = errors.New("chat: session memory store is required")
)
