package chat

import (
	"fmt"
	"strings"

	"github.com/praxisworks/ragchat/ai"
	"github.com/praxisworks/ragchat/core"
)

const plainSystemPrompt = "You are a helpful assistant. Answer the user's questions clearly and concisely."

const groundedSystemPrompt = `You are a helpful assistant that answers questions using the provided context.

Use the context below to answer the user's question. If the context does not contain the information needed, say that the information is not available in the provided documents. Do not invent facts that are not supported by the context.

Context:
%s`

// noContextNote replaces the retrieved context when the bot's index has
// nothing to offer for the query.
const noContextNote = "No relevant documents were found for this question. Tell the user that the knowledge base does not cover this topic, and answer from general knowledge only if they clearly expect that."

// buildContext renders retrieved chunks into a single prompt block,
// preserving retrieval order.
func buildContext(chunks []core.RetrievedChunk) string {
	if len(chunks) == 0 {
		return noContextNote
	}
	var sb strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%s]\n%s", chunk.Source, chunk.Text)
	}
	return sb.String()
}

// buildMessages assembles the full generation prompt: system instruction,
// prior session history, then the user's message.
func buildMessages(systemPrompt string, history []core.Message, userMessage string) []ai.ChatMessage {
	messages := make([]ai.ChatMessage, 0, len(history)+2)
	messages = append(messages, ai.ChatMessage{Role: ai.ChatRoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := ai.ChatRoleUser
		if m.Role == core.RoleAssistant {
			role = ai.ChatRoleAssistant
		}
		messages = append(messages, ai.ChatMessage{Role: role, Content: m.Content})
	}
	return append(messages, ai.ChatMessage{Role: ai.ChatRoleUser, Content: userMessage})
}
