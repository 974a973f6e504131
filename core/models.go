package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// ChunkID is a deterministic identifier for a stored chunk.
// It is derived from the chunk's text content.
type ChunkID uint64

// ChunkIDFromText generates a deterministic chunk ID from text content
// using BLAKE2b hashing, so identical content produces identical IDs.
func ChunkIDFromText(text string) ChunkID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ChunkID(binary.LittleEndian.Uint64(sum))
}

// NewBotID returns a fresh opaque bot identifier.
// Bot IDs are never reused, even after the bot is deleted.
func NewBotID() string {
	return uuid.NewString()
}

// NewSessionID returns a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// BotStatus describes where a bot is in its ingestion lifecycle.
type BotStatus string

const (
	// BotStatusReady means the bot accepts uploads and serves retrieval.
	BotStatusReady BotStatus = "ready"
	// BotStatusProcessing means a document ingestion is in flight.
	// At most one ingestion runs per bot at a time.
	BotStatusProcessing BotStatus = "processing"
	// BotStatusError means the last ingestion failed. The bot still serves
	// retrieval over its previously ingested documents and accepts retries.
	BotStatusError BotStatus = "error"
)

// Bot is a named tenant owning an isolated document knowledge base.
type Bot struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	CreatedAt     time.Time           `json:"created_at"`
	Documents     []DocumentRecord    `json:"documents"`
	DocumentCount int                 `json:"document_count"` // always == len(Documents)
	Status        BotStatus           `json:"status"`
	Progress      *ProcessingProgress `json:"processing_progress,omitempty"`
	ErrorMessage  string              `json:"error_message,omitempty"` // set iff Status == BotStatusError
}

// DocumentRecord describes one successfully ingested document.
// Records are immutable once appended to a bot.
type DocumentRecord struct {
	Filename   string    `json:"filename"`
	AddedAt    time.Time `json:"added_at"`
	ChunkCount int       `json:"chunks"`
}

// ProcessingProgress reports structured progress for an in-flight ingestion.
type ProcessingProgress struct {
	CurrentStep    string `json:"current_step"`
	TotalSteps     int    `json:"total_steps"`
	CompletedSteps int    `json:"completed_steps"`
	Message        string `json:"message"`
}

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks a message written by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by the generation model.
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's ordered conversation log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Chunk is a bounded text fragment derived from a source document.
// Chunks are owned by a bot's vector index and never leave the storage
// layer except as retrieved text.
type Chunk struct {
	ID     ChunkID   `json:"id"`
	Seq    uint64    `json:"seq"` // insertion order within the bot's index
	Text   string    `json:"text"`
	Source string    `json:"source"` // filename of the originating document
	Vector []float32 `json:"vector"`
}

// RetrievedChunk is a search hit from a bot's vector index.
type RetrievedChunk struct {
	Text   string
	Source string
	Score  float32
}
