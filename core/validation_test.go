package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validBot() *Bot {
	return &Bot{
		ID:        NewBotID(),
		Name:      "support bot",
		CreatedAt: time.Now().UTC(),
		Documents: []DocumentRecord{
			{Filename: "manual.pdf", AddedAt: time.Now().UTC(), ChunkCount: 12},
		},
		DocumentCount: 1,
		Status:        BotStatusReady,
	}
}

func TestValidateBot(t *testing.T) {
	t.Run("valid bot passes", func(t *testing.T) {
		assert.NoError(t, ValidateBot(validBot()))
	})

	t.Run("nil bot fails", func(t *testing.T) {
		err := ValidateBot(nil)
		assert.ErrorIs(t, err, ErrInvalidBot)
	})

	t.Run("blank name fails", func(t *testing.T) {
		bot := validBot()
		bot.Name = "   "
		err := ValidateBot(bot)
		assert.ErrorIs(t, err, ErrEmptyBotName)
	})

	t.Run("unknown status fails", func(t *testing.T) {
		bot := validBot()
		bot.Status = BotStatus("stuck")
		err := ValidateBot(bot)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("document count mismatch fails", func(t *testing.T) {
		bot := validBot()
		bot.DocumentCount = 5
		err := ValidateBot(bot)
		assert.ErrorIs(t, err, ErrInvalidBot)
	})

	t.Run("error message without error status fails", func(t *testing.T) {
		bot := validBot()
		bot.ErrorMessage = "boom"
		err := ValidateBot(bot)
		assert.ErrorIs(t, err, ErrInvalidBot)
	})

	t.Run("error message with error status passes", func(t *testing.T) {
		bot := validBot()
		bot.Status = BotStatusError
		bot.ErrorMessage = "embedding service unreachable"
		assert.NoError(t, ValidateBot(bot))
	})
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleUser))
	assert.NoError(t, ValidateRole(RoleAssistant))
	assert.Error(t, ValidateRole(Role("system")))
}
