package ingestion

import "errors"

var (
	// ErrRegistryRequired is returned when a pipeline is constructed without
	// a bot registry.
	ErrRegistryRequired = errors.New("ingestion: bot registry is required")
	// ErrVectorsRequired is returned when a pipeline is constructed without
	// a vector repository.
	ErrVectorsRequired = errors.New("ingestion: vector repository is required")
	// ErrEmbedderRequired is returned when a pipeline is constructed without
	// an embedder.
	ErrEmbedderRequired = errors.New("ingestion: embedder is required")
	// ErrEmptyDocument is returned when a document yields no text to index.
	ErrEmptyDocument = errors.New("ingestion: document contains no text")
)
