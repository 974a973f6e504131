// Package openai implements the ai service interfaces against
// OpenAI-compatible APIs via langchaingo.
//
// The implementation works with any OpenAI-compatible endpoint, including
// the hosted OpenAI API, Ollama, LocalAI, and vLLM. Hosts are normalized to
// carry the /v1 suffix these APIs expect.
package openai
