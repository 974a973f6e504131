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

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/praxisworks/ragchat/ai"
	"github.com/praxisworks/ragchat/bots"
	"github.com/praxisworks/ragchat/core"
	"github.com/praxisworks/ragchat/storage"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the number of characters shared between
	// adjacent chunks.
	DefaultChunkOverlap = 200
	// DefaultBatchSize is the number of chunk texts embedded per call.
	DefaultBatchSize = 32
	// DefaultPoolSize is the number of concurrent embedding workers.
	DefaultPoolSize = 4

	totalSteps = 4
)

// Pipeline turns an uploaded document into indexed, searchable chunks.
//
// A run is load -> split -> embed -> index, bracketed by the owning bot's
// processing transition: the pipeline claims the bot before touching the
// file and releases it (to Ready or Error) on every exit path. The index
// write is a single atomic batch, so a failed run never leaves partial
// chunks behind.
type Pipeline struct {
	registry  *bots.Registry
	vectors   storage.VectorRepository
	embedder  ai.Embedder
	splitter  textsplitter.RecursiveCharacter
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	chunkSize    int
	chunkOverlap int
	batchSize    int
	poolSize     int
	logger       *slog.Logger
}

// WithChunking overrides the splitter's chunk size and overlap.
func WithChunking(size, overlap int) Option {
	return func(c *config) {
		if size > 0 {
			c.chunkSize = size
		}
		if overlap >= 0 {
			c.chunkOverlap = overlap
		}
	}
}

// WithBatchSize sets how many chunk texts are embedded per provider call.
func WithBatchSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithPoolSize sets the number of concurrent embedding workers.
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLogger sets the pipeline's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewPipeline creates an ingestion pipeline over the given registry, vector
// repository, and embedder.
func NewPipeline(registry *bots.Registry, vectors storage.VectorRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if vectors == nil {
		return nil, ErrVectorsRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	cfg := config{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		batchSize:    DefaultBatchSize,
		poolSize:     DefaultPoolSize,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	pool, err := ants.NewPool(cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("creating embedding pool: %w", err)
	}

	return &Pipeline{
		registry: registry,
		vectors:  vectors,
		embedder: embedder,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.chunkSize),
			textsplitter.WithChunkOverlap(cfg.chunkOverlap),
		),
		pool:      pool,
		batchSize: cfg.batchSize,
		logger:    cfg.logger.With("component", "ingestion"),
	}, nil
}

// Close releases the pipeline's worker pool. In-flight runs finish first.
func (p *Pipeline) Close() error {
	p.pool.Release()
	return nil
}

// Ingest processes one uploaded document into the bot's index and returns
// the resulting document record.
//
// Rejections happen before the bot is claimed, in order: unknown bot, bot
// already processing, unsupported extension. None of them flips the bot's
// status. After the claim succeeds, every failure marks the bot Error with
// a descriptive message; previously ingested documents stay searchable
// throughout.
func (p *Pipeline) Ingest(ctx context.Context, botID string, data []byte, filename string) (core.DocumentRecord, error) {
	bot, err := p.registry.Get(ctx, botID)
	if err != nil {
		return core.DocumentRecord{}, err
	}
	if bot.Status == core.BotStatusProcessing {
		return core.DocumentRecord{}, core.ErrConflict
	}

	format, err := formatForFilename(filename)
	if err != nil {
		return core.DocumentRecord{}, err
	}

	// The checks above give callers the right failure; this is the atomic
	// gate against a concurrent upload.
	if err := p.registry.BeginProcessing(ctx, botID); err != nil {
		return core.DocumentRecord{}, err
	}

	log := p.logger.With("bot_id", botID, "filename", filename, "format", format.String())
	log.Info("starting document ingestion", "bytes", len(data))

	chunkCount, err := p.run(ctx, botID, data, filename, format, log)
	if err != nil {
		log.Error("ingestion failed", "error", err)
		if failErr := p.registry.FailProcessing(ctx, botID, err.Error()); failErr != nil {
			log.Error("failed to mark bot as errored", "error", failErr)
		}
		return core.DocumentRecord{}, fmt.Errorf("%w: %s", core.ErrIngestion, err.Error())
	}

	record := core.DocumentRecord{
		Filename:   filename,
		AddedAt:    time.Now().UTC(),
		ChunkCount: chunkCount,
	}
	if err := p.registry.CompleteProcessing(ctx, botID, record); err != nil {
		log.Error("failed to record document", "error", err)
		// The chunks are indexed but the record write failed; leave the bot
		// errored rather than stuck in Processing.
		if failErr := p.registry.FailProcessing(ctx, botID, "failed to record document: "+err.Error()); failErr != nil {
			log.Error("failed to mark bot as errored", "error", failErr)
		}
		return core.DocumentRecord{}, err
	}

	log.Info("document ingested", "chunks", chunkCount)
	return record, nil
}

// run executes the load/split/embed/index steps for a claimed bot.
func (p *Pipeline) run(ctx context.Context, botID string, data []byte, filename string, format Format, log *slog.Logger) (int, error) {
	p.step(ctx, botID, 1, "loading document")

	texts, err := p.loadAndSplit(ctx, botID, data, filename, format)
	if err != nil {
		return 0, err
	}
	log.Debug("document split", "chunks", len(texts))

	p.step(ctx, botID, 3, "generating embeddings")
	vectors, err := p.embedBatches(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("generating embeddings: %w", err)
	}

	p.step(ctx, botID, 4, "indexing chunks")
	chunks := make([]*core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.Chunk{
			ID:     core.ChunkIDFromText(text),
			Text:   text,
			Source: filename,
			Vector: vectors[i],
		}
	}
	if err := p.vectors.AddChunks(ctx, botID, chunks); err != nil {
		return 0, fmt.Errorf("indexing chunks: %w", err)
	}

	return len(chunks), nil
}

// loadAndSplit stages the upload in a temporary file, loads it with the
// format's loader, and splits the text into overlapping chunks. The
// temporary file is removed before the function returns, on every path.
func (p *Pipeline) loadAndSplit(ctx context.Context, botID string, data []byte, filename string, format Format) ([]string, error) {
	file, err := os.CreateTemp("", "ragchat-upload-*"+filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	defer func() {
		file.Close()
		os.Remove(file.Name())
	}()

	if _, err := file.Write(data); err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("staging upload: %w", err)
	}

	docs, err := loadDocuments(ctx, format, file)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	p.step(ctx, botID, 2, "splitting text")
	var texts []string
	for _, doc := range docs {
		if strings.TrimSpace(doc.PageContent) == "" {
			continue
		}
		parts, err := p.splitter.SplitText(doc.PageContent)
		if err != nil {
			return nil, fmt.Errorf("splitting text: %w", err)
		}
		for _, part := range parts {
			if strings.TrimSpace(part) != "" {
				texts = append(texts, part)
			}
		}
	}
	if len(texts) == 0 {
		return nil, ErrEmptyDocument
	}
	return texts, nil
}

// embedBatches embeds the chunk texts in fixed-size batches submitted to the
// worker pool, preserving input order in the result.
func (p *Pipeline) embedBatches(ctx context.Context, texts []string) ([][]float32, error) {
	type batch struct {
		start int
		texts []string
	}

	var batches []batch
	for start := 0; start < len(texts); start += p.batchSize {
		end := min(start+p.batchSize, len(texts))
		batches = append(batches, batch{start: start, texts: texts[start:end]})
	}

	vectors := make([][]float32, len(texts))
	errs := make([]error, len(batches))

	var wg sync.WaitGroup
	for i, b := range batches {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			embedded, err := p.embedder.EmbedTexts(ctx, b.texts)
			if err != nil {
				errs[i] = err
				return
			}
			if len(embedded) != len(b.texts) {
				errs[i] = fmt.Errorf("embedder returned %d vectors for %d texts", len(embedded), len(b.texts))
				return
			}
			copy(vectors[b.start:], embedded)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

// step publishes a progress update. Progress is advisory: a failed update
// never aborts the run.
func (p *Pipeline) step(ctx context.Context, botID string, completed int, message string) {
	progress := &core.ProcessingProgress{
		CurrentStep:    message,
		TotalSteps:     totalSteps,
		CompletedSteps: completed - 1,
		Message:        message,
	}
	if err := p.registry.UpdateProgress(ctx, botID, progress); err != nil {
		p.logger.Warn("failed to update progress", "bot_id", botID, "error", err)
	}
}
