package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatRole identifies the author of a prompt message.
type ChatRole int

const (
	// ChatRoleSystem represents instructions to the model.
	ChatRoleSystem ChatRole = iota + 1
	// ChatRoleUser represents the end user.
	ChatRoleUser
	// ChatRoleAssistant represents prior model output.
	ChatRoleAssistant
)

// ChatMessage is one message in a generation prompt.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// TokenFunc receives streamed output tokens as they are produced.
// Returning an error cancels the in-flight generation.
type TokenFunc func(ctx context.Context, token string) error

// ChatModel generates streaming responses from a conversation prompt.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// StreamChat generates a response to the given messages, invoking onToken
	// for each produced token, and returns the complete response text.
	// The call honors ctx cancellation; a cancelled context stops token
	// production promptly and returns the context's error.
	StreamChat(ctx context.Context, messages []ChatMessage, onToken TokenFunc) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and ChatModel instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ChatModel returns the streaming generation service.
	// The returned ChatModel is safe for concurrent use.
	ChatModel() ChatModel

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
