// Package ingestion implements the document processing pipeline that turns
// uploaded files into searchable vector indexes.
//
// A document moves through four steps: loading (format-specific extraction
// of text), splitting (recursive character chunking with overlap so that
// context survives chunk boundaries), embedding (batched vector generation
// on a bounded worker pool), and indexing (a single atomic write into the
// owning bot's index).
//
// The pipeline cooperates with the bot registry's status state machine:
// exactly one ingestion runs per bot at a time, and the bot's status and
// progress reflect the run throughout. A failed run marks the bot errored
// without disturbing its previously ingested documents.
package ingestion
