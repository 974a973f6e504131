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


package core

import "errors"

// Error taxonomy for the chat engine. Request-shaped errors (NotFound,
// Conflict, UnsupportedFormat, EmptyInput) are reported to the caller
// before any side effect takes place.
var (
	// ErrNotFound indicates an unknown bot ID.
	ErrNotFound = errors.New("bot not found")

	// ErrConflict indicates an ingestion is already in progress for the bot.
	ErrConflict = errors.New("ingestion already in progress")

	// ErrUnsupportedFormat indicates an unrecognized document file extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyInput indicates a blank chat message.
	ErrEmptyInput = errors.New("message cannot be empty")

	// ErrIngestion indicates a loader, splitter, embedding, or index failure
	// during document processing. It is recorded on the bot rather than
	// propagated past the pipeline boundary.
	ErrIngestion = errors.New("document ingestion failed")

	// ErrRetrieval indicates a vector index search failure.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrProvider indicates a generation provider failure mid-stream.
	ErrProvider = errors.New("generation provider failed")

	// ErrInvalidBot indicates a Bot failed validation.
	ErrInvalidBot = errors.New("invalid bot")

	// ErrEmptyBotName indicates the bot Name field is empty.
	ErrEmptyBotName = errors.New("bot name cannot be empty")

	// ErrInvalidStatus indicates an invalid BotStatus value.
	ErrInvalidStatus = errors.New("invalid bot status")
)
