package storage

import (
	"context"

	"github.com/praxisworks/ragchat/core"
)

// BotRepository provides durable storage for bot metadata and the bot status
// state machine. Implementations must be thread-safe and support concurrent
// access; the processing transitions must be atomic check-and-set operations.
type BotRepository interface {
	// Put stores a bot record, overwriting any existing record with the same ID.
	Put(ctx context.Context, bot *core.Bot) error

	// Get retrieves a bot by ID.
	// Returns ErrNotFound if the bot doesn't exist.
	Get(ctx context.Context, id string) (*core.Bot, error)

	// List retrieves all bots ordered by creation time, newest first.
	List(ctx context.Context) ([]*core.Bot, error)

	// Delete removes a bot record. Returns false if the bot doesn't exist.
	Delete(ctx context.Context, id string) (bool, error)

	// BeginProcessing atomically transitions the bot from Ready or Error to
	// Processing. Returns ErrConflict if the bot is already Processing, and
	// ErrNotFound if the bot doesn't exist. The check and the transition are
	// a single atomic operation; two concurrent calls cannot both succeed.
	BeginProcessing(ctx context.Context, id string) error

	// CompleteProcessing appends the document record, recomputes the document
	// count, clears progress, and sets status back to Ready.
	CompleteProcessing(ctx context.Context, id string, record core.DocumentRecord) error

	// FailProcessing sets status to Error with the given message, clears
	// progress, and leaves the document list unchanged.
	FailProcessing(ctx context.Context, id string, message string) error

	// UpdateProgress replaces the bot's processing progress.
	// A nil progress clears it.
	UpdateProgress(ctx context.Context, id string, progress *core.ProcessingProgress) error

	// Close closes the repository and releases resources.
	Close() error
}

// VectorRepository provides per-bot nearest-neighbor chunk indexes.
// Each bot's index is isolated: operations on one bot's chunks never
// observe or affect another bot's chunks.
type VectorRepository interface {
	// AddChunks stores the chunks in the bot's index in a single atomic batch.
	// Either all chunks are stored or none are; a failed add leaves the index
	// exactly as it was. Chunk Seq fields are assigned in insertion order.
	AddChunks(ctx context.Context, botID string, chunks []*core.Chunk) error

	// Search returns up to k chunks from the bot's index ranked by descending
	// cosine similarity to the query vector. Ties are broken by insertion
	// order. An empty index yields an empty result, not an error.
	Search(ctx context.Context, botID string, vector []float32, k int) ([]core.RetrievedChunk, error)

	// Count returns the number of chunks stored in the bot's index.
	Count(ctx context.Context, botID string) (int, error)

	// DeleteBot removes all index state for the bot. No-op for unknown bots.
	DeleteBot(ctx context.Context, botID string) error

	// Close closes the repository and releases resources.
	Close() error
}
