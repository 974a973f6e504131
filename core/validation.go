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

import (
	"fmt"
	"strings"
)

// ValidateBot validates a Bot according to domain rules.
//
// Validation rules:
//   - Name must not be empty or whitespace
//   - Status must be a known value
//   - DocumentCount must equal len(Documents)
//   - ErrorMessage must be empty unless Status is BotStatusError
func ValidateBot(bot *Bot) error {
	if bot == nil {
		return fmt.Errorf("%w: bot is nil", ErrInvalidBot)
	}

	if strings.TrimSpace(bot.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBot, ErrEmptyBotName)
	}

	if err := ValidateStatus(bot.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBot, err)
	}

	if bot.DocumentCount != len(bot.Documents) {
		return fmt.Errorf("%w: document count %d does not match %d documents",
			ErrInvalidBot, bot.DocumentCount, len(bot.Documents))
	}

	if bot.ErrorMessage != "" && bot.Status != BotStatusError {
		return fmt.Errorf("%w: error message set while status is %q", ErrInvalidBot, bot.Status)
	}

	return nil
}

// ValidateStatus validates that a BotStatus has a known value.
func ValidateStatus(status BotStatus) error {
	switch status {
	case BotStatusReady, BotStatusProcessing, BotStatusError:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// ValidateRole validates that a Role has a known value.
func ValidateRole(role Role) error {
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("invalid role %q", role)
	}
	return nil
}
