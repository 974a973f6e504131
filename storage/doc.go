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


// Package storage provides the storage abstraction layer for ragchat.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - BotRepository: Durable bot metadata and the status state machine
//   - VectorRepository: Per-bot chunk indexes with similarity search
//
// Public constructors in implementation packages return these interfaces to
// prevent accidental coupling to backend specifics.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	bots, err := badger.NewBotRepository(backend)
//	vectors, err := badger.NewVectorRepository(backend)
//
// Use in tests with in-memory storage:
//
//	bots, vectors, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Status transitions on BotRepository are
// atomic check-and-set operations: two concurrent BeginProcessing calls on
// one bot cannot both succeed.
package storage
