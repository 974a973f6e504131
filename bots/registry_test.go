package bots

import (
	"context"
	"testing"
	"time"

	"github.com/praxisworks/ragchat/ai/mock"
	"github.com/praxisworks/ragchat/core"
	"github.com/praxisworks/ragchat/storage"
	"github.com/praxisworks/ragchat/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T) (*Registry, storage.VectorRepository) {
	t.Helper()

	botRepo, vectorRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vectorRepo.Close()
		botRepo.Close()
		backend.Close()
	})

	registry, err := NewRegistry(botRepo, vectorRepo)
	require.NoError(t, err)
	return registry, vectorRepo
}

func TestCreate(t *testing.T) {
	registry, _ := setupRegistry(t)
	ctx := context.Background()

	bot, err := registry.Create(ctx, "faq bot", "answers FAQs")
	require.NoError(t, err)

	assert.NotEmpty(t, bot.ID)
	assert.Equal(t, "faq bot", bot.Name)
	assert.Equal(t, core.BotStatusReady, bot.Status)
	assert.Empty(t, bot.Documents)
	assert.Zero(t, bot.DocumentCount)
	assert.False(t, bot.CreatedAt.IsZero())

	// Persisted
	got, err := registry.Get(ctx, bot.ID)
	require.NoError(t, err)
	assert.Equal(t, bot.ID, got.ID)
}

func TestCreateBlankNameFails(t *testing.T) {
	registry, _ := setupRegistry(t)

	_, err := registry.Create(context.Background(), "   ", "")
	assert.ErrorIs(t, err, core.ErrEmptyBotName)
}

func TestGetUnknown(t *testing.T) {
	registry, _ := setupRegistry(t)

	_, err := registry.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	registry, _ := setupRegistry(t)
	ctx := context.Background()

	first, err := registry.Create(ctx, "first", "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := registry.Create(ctx, "second", "")
	require.NoError(t, err)

	bots, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, bots, 2)
	assert.Equal(t, second.ID, bots[0].ID)
	assert.Equal(t, first.ID, bots[1].ID)
}

func TestDeleteCascades(t *testing.T) {
	registry, vectorRepo := setupRegistry(t)
	ctx := context.Background()

	bot, err := registry.Create(ctx, "doomed", "")
	require.NoError(t, err)

	chunk := &core.Chunk{
		ID:     core.ChunkIDFromText("orphan text"),
		Text:   "orphan text",
		Source: "doc.md",
		Vector: mock.DeterministicVector("orphan text", 16),
	}
	require.NoError(t, vectorRepo.AddChunks(ctx, bot.ID, []*core.Chunk{chunk}))

	found, err := registry.Delete(ctx, bot.ID)
	require.NoError(t, err)
	assert.True(t, found)

	// Metadata gone
	_, err = registry.Get(ctx, bot.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	// Index gone
	count, err := vectorRepo.Count(ctx, bot.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Idempotent
	found, err = registry.Delete(ctx, bot.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProcessingTransitions(t *testing.T) {
	registry, _ := setupRegistry(t)
	ctx := context.Background()

	bot, err := registry.Create(ctx, "worker", "")
	require.NoError(t, err)

	require.NoError(t, registry.BeginProcessing(ctx, bot.ID))

	// Second begin conflicts
	err = registry.BeginProcessing(ctx, bot.ID)
	assert.ErrorIs(t, err, core.ErrConflict)

	record := core.DocumentRecord{Filename: "a.md", AddedAt: time.Now().UTC(), ChunkCount: 2}
	require.NoError(t, registry.CompleteProcessing(ctx, bot.ID, record))

	got, err := registry.Get(ctx, bot.ID)
	require.NoError(t, err)
	assert.Equal(t, core.BotStatusReady, got.Status)
	assert.Equal(t, 1, got.DocumentCount)
	assert.Len(t, got.Documents, 1)
	assert.NoError(t, core.ValidateBot(got))

	// Failure path
	require.NoError(t, registry.BeginProcessing(ctx, bot.ID))
	require.NoError(t, registry.FailProcessing(ctx, bot.ID, "embedding timed out"))

	got, err = registry.Get(ctx, bot.ID)
	require.NoError(t, err)
	assert.Equal(t, core.BotStatusError, got.Status)
	assert.Equal(t, "embedding timed out", got.ErrorMessage)
	assert.Equal(t, 1, got.DocumentCount, "failure must not change documents")

	// Retry from error
	assert.NoError(t, registry.BeginProcessing(ctx, bot.ID))
}

func TestBeginProcessingUnknownBot(t *testing.T) {
	registry, _ := setupRegistry(t)

	err := registry.BeginProcessing(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
