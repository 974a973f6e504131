// Package bots manages bot lifecycles over the storage layer.
//
// A bot is a named tenant owning an isolated document knowledge base. The
// registry handles creation, lookup, listing, deletion (cascading into the
// bot's vector index), and the processing status state machine:
//
//	Ready --BeginProcessing--> Processing --CompleteProcessing--> Ready
//	                           Processing --FailProcessing-----> Error
//
// Error and Ready both accept a new BeginProcessing, so a failed ingestion
// can be retried indefinitely until the bot is deleted. BeginProcessing is
// an atomic check-and-set: at most one ingestion runs per bot at a time.
package bots
