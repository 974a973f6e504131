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


package bots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/praxisworks/ragchat/core"
	"github.com/praxisworks/ragchat/storage"
)

// Registry manages bot lifecycles: metadata CRUD, the processing status
// state machine, and cascading deletion of each bot's vector index.
type Registry struct {
	bots    storage.BotRepository
	vectors storage.VectorRepository
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRegistry creates a bot registry over the given repositories.
func NewRegistry(bots storage.BotRepository, vectors storage.VectorRepository, opts ...Option) (*Registry, error) {
	if bots == nil {
		return nil, errors.New("bot repository required")
	}
	if vectors == nil {
		return nil, errors.New("vector repository required")
	}

	r := &Registry{
		bots:    bots,
		vectors: vectors,
		logger:  slog.Default().With("component", "bot-registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Create registers a new bot with a fresh ID, status Ready, and no documents.
func (r *Registry) Create(ctx context.Context, name, description string) (*core.Bot, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidBot, core.ErrEmptyBotName)
	}

	bot := &core.Bot{
		ID:          core.NewBotID(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Documents:   []core.DocumentRecord{},
		Status:      core.BotStatusReady,
	}
	if err := r.bots.Put(ctx, bot); err != nil {
		return nil, err
	}

	r.logger.Info("created bot", "botID", bot.ID, "name", bot.Name)
	return bot, nil
}

// Get retrieves a bot by ID.
// Returns core.ErrNotFound for unknown IDs.
func (r *Registry) Get(ctx context.Context, id string) (*core.Bot, error) {
	bot, err := r.bots.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return bot, nil
}

// List retrieves all bots, newest first.
func (r *Registry) List(ctx context.Context) ([]*core.Bot, error) {
	return r.bots.List(ctx)
}

// Delete removes the bot's metadata and its vector index.
// Returns false if the bot doesn't exist; deleting twice is safe.
func (r *Registry) Delete(ctx context.Context, id string) (bool, error) {
	found, err := r.bots.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	if err := r.vectors.DeleteBot(ctx, id); err != nil {
		return true, err
	}

	r.logger.Info("deleted bot", "botID", id)
	return true, nil
}

// BeginProcessing atomically transitions the bot from Ready or Error to
// Processing. Returns core.ErrConflict if an ingestion is already in flight
// and core.ErrNotFound for unknown bots.
func (r *Registry) BeginProcessing(ctx context.Context, id string) error {
	if err := r.bots.BeginProcessing(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}

// CompleteProcessing appends the document record, recomputes the document
// count, and returns the bot to Ready.
func (r *Registry) CompleteProcessing(ctx context.Context, id string, record core.DocumentRecord) error {
	if err := r.bots.CompleteProcessing(ctx, id, record); err != nil {
		return translate(err)
	}
	r.logger.Info("document added", "botID", id, "filename", record.Filename, "chunks", record.ChunkCount)
	return nil
}

// FailProcessing records the failure on the bot, leaving documents unchanged.
func (r *Registry) FailProcessing(ctx context.Context, id string, message string) error {
	if err := r.bots.FailProcessing(ctx, id, message); err != nil {
		return translate(err)
	}
	r.logger.Warn("ingestion failed", "botID", id, "reason", message)
	return nil
}

// UpdateProgress replaces the bot's processing progress.
func (r *Registry) UpdateProgress(ctx context.Context, id string, progress *core.ProcessingProgress) error {
	if err := r.bots.UpdateProgress(ctx, id, progress); err != nil {
		return translate(err)
	}
	return nil
}

// translate maps storage sentinels onto the domain error taxonomy.
func translate(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return core.ErrNotFound
	case errors.Is(err, storage.ErrConflict):
		return core.ErrConflict
	}
	return err
}
