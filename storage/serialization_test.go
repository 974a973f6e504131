package storage

import (
	"testing"
	"time"

	"github.com/praxisworks/ragchat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	bot := &core.Bot{
		ID:          core.NewBotID(),
		Name:        "handbook bot",
		Description: "answers from the employee handbook",
		CreatedAt:   now,
		Documents: []core.DocumentRecord{
			{Filename: "handbook.pdf", AddedAt: now, ChunkCount: 42},
		},
		DocumentCount: 1,
		Status:        core.BotStatusError,
		ErrorMessage:  "embedding host unreachable",
		Progress: &core.ProcessingProgress{
			CurrentStep:    "embedding",
			TotalSteps:     4,
			CompletedSteps: 2,
			Message:        "embedding 42 chunks",
		},
	}

	data, err := MarshalBot(bot)
	require.NoError(t, err)

	got, err := UnmarshalBot(data)
	require.NoError(t, err)
	assert.Equal(t, bot, got)
}

func TestChunkRoundTrip(t *testing.T) {
	chunk := &core.Chunk{
		ID:     core.ChunkIDFromText("chunk text"),
		Seq:    7,
		Text:   "chunk text",
		Source: "handbook.pdf",
		Vector: []float32{0.25, -0.5, 0.75},
	}

	data, err := MarshalChunk(chunk)
	require.NoError(t, err)

	got, err := UnmarshalChunk(data)
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestUnmarshalBotCorrupt(t *testing.T) {
	_, err := UnmarshalBot([]byte("{not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
