package badger

import (
	"context"
	"strings"
	"testing"

	"github.com/praxisworks/ragchat/ai/mock"
	"github.com/praxisworks/ragchat/core"
)

func makeChunk(text, source string) *core.Chunk {
	return &core.Chunk{
		ID:     core.ChunkIDFromText(text),
		Text:   text,
		Source: source,
		Vector: mock.DeterministicVector(text, 64),
	}
}

func TestVectorRepositoryAddAndSearch(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()
	botID := core.NewBotID()

	chunks := []*core.Chunk{
		makeChunk("alpha content", "a.md"),
		makeChunk("beta content", "a.md"),
		makeChunk("gamma content", "a.md"),
	}
	if err := vectorRepo.AddChunks(ctx, botID, chunks); err != nil {
		t.Fatalf("AddChunks failed: %v", err)
	}

	count, err := vectorRepo.Count(ctx, botID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 chunks, got %d", count)
	}

	// Searching with an exact chunk vector must rank that chunk first.
	results, err := vectorRepo.Search(ctx, botID, mock.DeterministicVector("beta content", 64), 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Text != "beta content" {
		t.Fatalf("Expected 'beta content' first, got '%s'", results[0].Text)
	}
	if results[0].Score < results[1].Score {
		t.Fatal("Results must be ordered by descending score")
	}
}

func TestVectorRepositoryIsolation(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()
	botA := core.NewBotID()
	botB := core.NewBotID()

	if err := vectorRepo.AddChunks(ctx, botA, []*core.Chunk{makeChunk("apple only", "fruit.md")}); err != nil {
		t.Fatal(err)
	}
	if err := vectorRepo.AddChunks(ctx, botB, []*core.Chunk{makeChunk("banana only", "fruit.md")}); err != nil {
		t.Fatal(err)
	}

	// Bot A must never surface bot B's content, however similar the query.
	results, err := vectorRepo.Search(ctx, botA, mock.DeterministicVector("banana", 64), 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, result := range results {
		if strings.Contains(result.Text, "banana") {
			t.Fatalf("Bot A search leaked bot B content: %q", result.Text)
		}
	}
	if len(results) != 1 || results[0].Text != "apple only" {
		t.Fatalf("Expected only bot A's chunk, got %+v", results)
	}
}

func TestVectorRepositoryTiesByInsertionOrder(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()
	botID := core.NewBotID()

	// Identical vectors, distinct texts: scores tie exactly.
	shared := mock.DeterministicVector("tied", 16)
	first := &core.Chunk{ID: core.ChunkIDFromText("first"), Text: "first", Source: "t.md", Vector: shared}
	second := &core.Chunk{ID: core.ChunkIDFromText("second"), Text: "second", Source: "t.md", Vector: shared}
	if err := vectorRepo.AddChunks(ctx, botID, []*core.Chunk{first, second}); err != nil {
		t.Fatal(err)
	}

	results, err := vectorRepo.Search(ctx, botID, shared, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Text != "first" || results[1].Text != "second" {
		t.Fatalf("Ties must preserve insertion order, got [%s, %s]", results[0].Text, results[1].Text)
	}
}

func TestVectorRepositoryDeleteBot(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()
	botA := core.NewBotID()
	botB := core.NewBotID()

	if err := vectorRepo.AddChunks(ctx, botA, []*core.Chunk{makeChunk("keep me", "k.md")}); err != nil {
		t.Fatal(err)
	}
	if err := vectorRepo.AddChunks(ctx, botB, []*core.Chunk{makeChunk("purge me", "p.md")}); err != nil {
		t.Fatal(err)
	}

	if err := vectorRepo.DeleteBot(ctx, botB); err != nil {
		t.Fatalf("DeleteBot failed: %v", err)
	}

	count, err := vectorRepo.Count(ctx, botB)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("Expected empty index after delete, got %d chunks", count)
	}

	// The other bot is untouched
	count, err = vectorRepo.Count(ctx, botA)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("Expected bot A untouched, got %d chunks", count)
	}

	// Deleting an unknown bot is a no-op
	if err := vectorRepo.DeleteBot(ctx, "no-such-bot"); err != nil {
		t.Fatalf("DeleteBot on unknown bot failed: %v", err)
	}
}

func TestVectorRepositorySearchEmptyIndex(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	results, err := vectorRepo.Search(context.Background(), core.NewBotID(), mock.DeterministicVector("anything", 16), 4)
	if err != nil {
		t.Fatalf("Search on empty index failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
}
