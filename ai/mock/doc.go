// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ChatModel,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewProvider()
//	vector, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Scripted token stream
//	chatModel := mock.NewChatModel()
//	chatModel.Tokens = []string{"Hello", ", ", "world"}
//
//	// Check call counts
//	count := chatModel.CallCount()
//
// # Default Behavior
//
//   - Embedder: Returns deterministic vectors based on text hash
//   - ChatModel: Streams "mock response" token by token
//   - Provider: Aggregates mock embedder and chat model
package mock
