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
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/praxisworks/ragchat/core"
	"github.com/praxisworks/ragchat/storage"
)

// VectorRepository implements storage.VectorRepository on a BadgerDB backend.
//
// Each bot's chunks live under their own key prefix, so one bot's search
// never observes another bot's content. Chunk keys embed a BigEndian
// sequence number; iteration order is insertion order.
type VectorRepository struct {
	backend *Backend
	seq     *badger.Sequence
	logger  *slog.Logger
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a vector repository on the given backend.
func NewVectorRepository(backend *Backend) (storage.VectorRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	seq, err := backend.GetSequence(chunkSeq)
	if err != nil {
		return nil, err
	}
	return &VectorRepository{
		backend: backend,
		seq:     seq,
		logger:  slog.Default().With("component", "vector-repository"),
	}, nil
}

// AddChunks stores the chunks in the bot's index in a single transaction.
// Either all chunks are stored or none are.
func (r *VectorRepository) AddChunks(ctx context.Context, botID string, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			next, err := r.seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if next == 0 {
				next, err = r.seq.Next()
				if err != nil {
					return err
				}
			}
			chunk.Seq = next

			value, err := storage.MarshalChunk(chunk)
			if err != nil {
				return err
			}
			if err := tx.Set(makeChunkKey(botID, chunk.Seq), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Search returns up to k chunks ranked by descending cosine similarity.
// Ties are broken by insertion order.
func (r *VectorRepository) Search(ctx context.Context, botID string, vector []float32, k int) ([]core.RetrievedChunk, error) {
	if k <= 0 {
		return []core.RetrievedChunk{}, nil
	}

	type scored struct {
		chunk *core.Chunk
		score float32
	}
	var hits []scored

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix(botID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}
			hits = append(hits, scored{chunk: chunk, score: cosineSimilarity(vector, chunk.Vector)})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Iteration order is insertion order, so a stable sort by score keeps
	// equal-score chunks in insertion order.
	slices.SortStableFunc(hits, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return 0
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	results := make([]core.RetrievedChunk, len(hits))
	for i, hit := range hits {
		results[i] = core.RetrievedChunk{
			Text:   hit.chunk.Text,
			Source: hit.chunk.Source,
			Score:  hit.score,
		}
	}
	return results, nil
}

// Count returns the number of chunks stored in the bot's index.
func (r *VectorRepository) Count(ctx context.Context, botID string) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix(botID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteBot removes all index state for the bot.
func (r *VectorRepository) DeleteBot(ctx context.Context, botID string) error {
	// Collect keys first; deletes are batched to stay under the
	// transaction size limit.
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix(botID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	const batchSize = 1000
	for start := 0; start < len(keys); start += batchSize {
		end := min(start+batchSize, len(keys))
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, key := range keys[start:end] {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases the chunk sequence. The shared backend is closed separately.
func (r *VectorRepository) Close() error {
	return r.seq.Release()
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched or zero-magnitude vectors.
func cosineSimilarity(a, b []float32) float32 {
	minLen := min(len(a), len(b))
	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
