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


package badger

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/praxisworks/ragchat/core"
	"github.com/praxisworks/ragchat/storage"
)

// BotRepository implements storage.BotRepository on a BadgerDB backend.
//
// Status transitions run inside serializable read-write transactions; a
// commit conflict between two concurrent transitions surfaces as
// storage.ErrConflict, so the Ready->Processing check-and-set is atomic.
type BotRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.BotRepository = (*BotRepository)(nil)

// NewBotRepository creates a bot repository on the given backend.
func NewBotRepository(backend *Backend) (storage.BotRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &BotRepository{
		backend: backend,
		logger:  slog.Default().With("component", "bot-repository"),
	}, nil
}

// Put stores a bot record, overwriting any existing record with the same ID.
func (r *BotRepository) Put(ctx context.Context, bot *core.Bot) error {
	value, err := storage.MarshalBot(bot)
	if err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeBotKey(bot.ID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves a bot by ID.
func (r *BotRepository) Get(ctx context.Context, id string) (*core.Bot, error) {
	var bot *core.Bot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeBotKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			bot, err = storage.UnmarshalBot(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return bot, nil
}

// List retrieves all bots ordered by creation time, newest first.
func (r *BotRepository) List(ctx context.Context) ([]*core.Bot, error) {
	var bots []*core.Bot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeBotScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var bot *core.Bot
			err := iter.Item().Value(func(val []byte) error {
				var err error
				bot, err = storage.UnmarshalBot(val)
				return err
			})
			if err != nil {
				return err
			}
			bots = append(bots, bot)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(bots, func(a, b *core.Bot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return bots, nil
}

// Delete removes a bot record. Returns false if the bot doesn't exist.
func (r *BotRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBotKey(id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return false, err
	}
	return found, nil
}

// BeginProcessing atomically transitions the bot to Processing.
func (r *BotRepository) BeginProcessing(ctx context.Context, id string) error {
	err := r.mutate(id, func(bot *core.Bot) error {
		if bot.Status == core.BotStatusProcessing {
			return storage.ErrConflict
		}
		bot.Status = core.BotStatusProcessing
		bot.ErrorMessage = ""
		bot.Progress = &core.ProcessingProgress{
			CurrentStep:    "starting",
			TotalSteps:     4,
			CompletedSteps: 0,
			Message:        "starting document processing",
		}
		return nil
	})
	// A serialization conflict means a concurrent transition won the race.
	if errors.Is(err, badger.ErrConflict) {
		return storage.ErrConflict
	}
	return err
}

// CompleteProcessing appends the document record and returns the bot to Ready.
func (r *BotRepository) CompleteProcessing(ctx context.Context, id string, record core.DocumentRecord) error {
	return r.mutate(id, func(bot *core.Bot) error {
		bot.Documents = append(bot.Documents, record)
		bot.DocumentCount = len(bot.Documents)
		bot.Status = core.BotStatusReady
		bot.ErrorMessage = ""
		bot.Progress = nil
		return nil
	})
}

// FailProcessing sets status to Error, leaving the document list unchanged.
func (r *BotRepository) FailProcessing(ctx context.Context, id string, message string) error {
	return r.mutate(id, func(bot *core.Bot) error {
		bot.Status = core.BotStatusError
		bot.ErrorMessage = message
		bot.Progress = nil
		return nil
	})
}

// UpdateProgress replaces the bot's processing progress.
func (r *BotRepository) UpdateProgress(ctx context.Context, id string, progress *core.ProcessingProgress) error {
	return r.mutate(id, func(bot *core.Bot) error {
		bot.Progress = progress
		return nil
	})
}

// mutate applies fn to the stored bot inside one read-write transaction.
func (r *BotRepository) mutate(id string, fn func(bot *core.Bot) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBotKey(id)
		item, err := tx.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var bot *core.Bot
		if err := item.Value(func(val []byte) error {
			bot, err = storage.UnmarshalBot(val)
			return err
		}); err != nil {
			return err
		}

		if err := fn(bot); err != nil {
			return err
		}

		value, err := storage.MarshalBot(bot)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the repository. The shared backend is closed separately.
func (r *BotRepository) Close() error {
	return nil
}
