// Package chat implements the retrieval-augmented conversation engine.
//
// Each turn is served as a Stream: the model's tokens are coalesced into
// fragments on a bounded channel while the caller forwards them to the
// client. When a bot is named, the engine grounds the response in chunks
// retrieved from that bot's index; otherwise it answers from the model
// alone. Conversation history lives in the session store and only records
// turns whose responses completed cleanly.
package chat
