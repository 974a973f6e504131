package badger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/praxisworks/ragchat/core"
	"github.com/praxisworks/ragchat/storage"
)

func newTestBot(name string) *core.Bot {
	return &core.Bot{
		ID:        core.NewBotID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Documents: []core.DocumentRecord{},
		Status:    core.BotStatusReady,
	}
}

func TestBotRepositoryBasics(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()

	bot := newTestBot("docs bot")
	if err := botRepo.Put(ctx, bot); err != nil {
		t.Fatalf("Failed to put bot: %v", err)
	}

	retrieved, err := botRepo.Get(ctx, bot.ID)
	if err != nil {
		t.Fatalf("Failed to get bot: %v", err)
	}
	if retrieved.Name != "docs bot" {
		t.Fatalf("Expected 'docs bot', got '%s'", retrieved.Name)
	}
	if retrieved.Status != core.BotStatusReady {
		t.Fatalf("Expected ready status, got '%s'", retrieved.Status)
	}

	// Unknown ID
	if _, err := botRepo.Get(ctx, "no-such-bot"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestBotRepositoryListOrder(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()

	older := newTestBot("older")
	older.CreatedAt = now.Add(-2 * time.Hour)
	newer := newTestBot("newer")
	newer.CreatedAt = now

	if err := botRepo.Put(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := botRepo.Put(ctx, newer); err != nil {
		t.Fatal(err)
	}

	bots, err := botRepo.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list bots: %v", err)
	}
	if len(bots) != 2 {
		t.Fatalf("Expected 2 bots, got %d", len(bots))
	}
	if bots[0].Name != "newer" || bots[1].Name != "older" {
		t.Fatalf("Expected newest first, got [%s, %s]", bots[0].Name, bots[1].Name)
	}
}

func TestBotRepositoryDelete(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()

	bot := newTestBot("doomed")
	if err := botRepo.Put(ctx, bot); err != nil {
		t.Fatal(err)
	}

	found, err := botRepo.Delete(ctx, bot.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !found {
		t.Fatal("Expected delete to report found")
	}

	if _, err := botRepo.Get(ctx, bot.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Idempotent second delete
	found, err = botRepo.Delete(ctx, bot.ID)
	if err != nil {
		t.Fatalf("Second delete failed: %v", err)
	}
	if found {
		t.Fatal("Expected second delete to report not found")
	}
}

func TestBeginProcessingConflict(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()

	bot := newTestBot("busy")
	if err := botRepo.Put(ctx, bot); err != nil {
		t.Fatal(err)
	}

	if err := botRepo.BeginProcessing(ctx, bot.ID); err != nil {
		t.Fatalf("First begin failed: %v", err)
	}

	err = botRepo.BeginProcessing(ctx, bot.ID)
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	// Documents must not have been touched by the failed begin
	retrieved, err := botRepo.Get(ctx, bot.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(retrieved.Documents) != 0 {
		t.Fatalf("Expected no documents, got %d", len(retrieved.Documents))
	}
	if retrieved.Status != core.BotStatusProcessing {
		t.Fatalf("Expected processing status, got '%s'", retrieved.Status)
	}
}

func TestBeginProcessingConcurrent(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()

	bot := newTestBot("raced")
	if err := botRepo.Put(ctx, bot); err != nil {
		t.Fatal(err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = botRepo.BeginProcessing(ctx, bot.ID)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, res := range results {
		if res == nil {
			succeeded++
		} else if !errors.Is(res, storage.ErrConflict) {
			t.Fatalf("Unexpected error: %v", res)
		}
	}
	if succeeded != 1 {
		t.Fatalf("Expected exactly 1 successful begin, got %d", succeeded)
	}
}

func TestProcessingLifecycle(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()

	bot := newTestBot("lifecycle")
	if err := botRepo.Put(ctx, bot); err != nil {
		t.Fatal(err)
	}

	// Complete path
	if err := botRepo.BeginProcessing(ctx, bot.ID); err != nil {
		t.Fatal(err)
	}
	record := core.DocumentRecord{Filename: "a.pdf", AddedAt: time.Now().UTC(), ChunkCount: 3}
	if err := botRepo.CompleteProcessing(ctx, bot.ID, record); err != nil {
		t.Fatal(err)
	}

	retrieved, err := botRepo.Get(ctx, bot.ID)
	if err != nil {
		t.Fatal(err)
	}
	if retrieved.Status != core.BotStatusReady {
		t.Fatalf("Expected ready, got '%s'", retrieved.Status)
	}
	if retrieved.DocumentCount != 1 || len(retrieved.Documents) != 1 {
		t.Fatalf("Expected 1 document, count=%d len=%d", retrieved.DocumentCount, len(retrieved.Documents))
	}
	if retrieved.Progress != nil {
		t.Fatal("Expected progress cleared after completion")
	}

	// Failure path leaves documents intact
	if err := botRepo.BeginProcessing(ctx, bot.ID); err != nil {
		t.Fatal(err)
	}
	if err := botRepo.FailProcessing(ctx, bot.ID, "loader exploded"); err != nil {
		t.Fatal(err)
	}

	retrieved, err = botRepo.Get(ctx, bot.ID)
	if err != nil {
		t.Fatal(err)
	}
	if retrieved.Status != core.BotStatusError {
		t.Fatalf("Expected error status, got '%s'", retrieved.Status)
	}
	if retrieved.ErrorMessage != "loader exploded" {
		t.Fatalf("Unexpected error message: %s", retrieved.ErrorMessage)
	}
	if retrieved.DocumentCount != 1 || len(retrieved.Documents) != 1 {
		t.Fatalf("Failure must not touch documents, count=%d len=%d", retrieved.DocumentCount, len(retrieved.Documents))
	}

	// Error state accepts a retry
	if err := botRepo.BeginProcessing(ctx, bot.ID); err != nil {
		t.Fatalf("Begin from error state failed: %v", err)
	}
}

func TestUpdateProgress(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); botRepo.Close(); backend.Close() }()

	ctx := context.Background()

	bot := newTestBot("progress")
	if err := botRepo.Put(ctx, bot); err != nil {
		t.Fatal(err)
	}
	if err := botRepo.BeginProcessing(ctx, bot.ID); err != nil {
		t.Fatal(err)
	}

	progress := &core.ProcessingProgress{
		CurrentStep:    "embedding",
		TotalSteps:     4,
		CompletedSteps: 2,
		Message:        "embedding 17 chunks",
	}
	if err := botRepo.UpdateProgress(ctx, bot.ID, progress); err != nil {
		t.Fatal(err)
	}

	retrieved, err := botRepo.Get(ctx, bot.ID)
	if err != nil {
		t.Fatal(err)
	}
	if retrieved.Progress == nil || retrieved.Progress.CurrentStep != "embedding" {
		t.Fatalf("Unexpected progress: %+v", retrieved.Progress)
	}
}

func TestRepositoryAfterBackendClose(t *testing.T) {
	botRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	vectorRepo.Close()
	if err := backend.Close(); err != nil {
		t.Fatalf("Failed to close backend: %v", err)
	}

	if _, err := botRepo.Get(context.Background(), "any"); !errors.Is(err, storage.ErrStorageClosed) {
		t.Fatalf("Expected ErrStorageClosed, got %v", err)
	}
	if err := botRepo.Put(context.Background(), newTestBot("late")); !errors.Is(err, storage.ErrStorageClosed) {
		t.Fatalf("Expected ErrStorageClosed, got %v", err)
	}
}
