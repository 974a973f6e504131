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


package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/praxisworks/ragchat/core"
)

// Store holds per-session ordered conversation logs in memory.
// All methods are safe for concurrent use. Message lists are append-only
// except for Clear, which resets a session to empty.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	maxSize  int
	logger   *slog.Logger
}

type entry struct {
	messages []core.Message
	lastUsed time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMaxSessions bounds the number of retained sessions. When the bound is
// exceeded, the least-recently-used session is evicted. Zero (the default)
// means unbounded.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n < 0 {
			n = 0
		}
		s.maxSize = n
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates an empty session memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		logger:   slog.Default().With("component", "session-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate ensures a session exists for the given ID.
// Creating an already-present session is a no-op.
func (s *Store) GetOrCreate(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(sessionID)
}

// History returns a copy of the session's ordered message log.
// An unknown session yields an empty slice, not an error.
func (s *Store) History(sessionID string) []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ent, ok := s.sessions[sessionID]
	if !ok {
		return []core.Message{}
	}
	history := make([]core.Message, len(ent.messages))
	copy(history, ent.messages)
	return history
}

// AppendTurn appends one completed turn (user message, assistant response)
// as two ordered entries. The append is atomic: concurrent readers observe
// either both messages or neither.
func (s *Store) AppendTurn(sessionID, userMessage, assistantResponse string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent := s.ensureLocked(sessionID)
	ent.messages = append(ent.messages,
		core.Message{Role: core.RoleUser, Content: userMessage},
		core.Message{Role: core.RoleAssistant, Content: assistantResponse},
	)
	ent.lastUsed = time.Now()
}

// Clear resets the session's message log to empty.
// No-op for unknown sessions.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.sessions[sessionID]; ok {
		ent.messages = nil
		ent.lastUsed = time.Now()
	}
}

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ensureLocked returns the entry for sessionID, creating it if needed and
// evicting the least-recently-used session when the store is over capacity.
// Caller must hold the write lock.
func (s *Store) ensureLocked(sessionID string) *entry {
	ent, ok := s.sessions[sessionID]
	if ok {
		ent.lastUsed = time.Now()
		return ent
	}

	if s.maxSize > 0 && len(s.sessions) >= s.maxSize {
		s.evictOldestLocked()
	}

	ent = &entry{lastUsed: time.Now()}
	s.sessions[sessionID] = ent
	return ent
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, ent := range s.sessions {
		if oldestID == "" || ent.lastUsed.Before(oldest) {
			oldestID = id
			oldest = ent.lastUsed
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		s.logger.Debug("evicted session", "sessionID", oldestID)
	}
}
