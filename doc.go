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

// Package ragchat is a knowledge-base-augmented chat service.
//
// Documents are uploaded into named bots, each owning an isolated vector
// index over its chunked content. Chat turns stream model output to the
// caller, optionally grounded in passages retrieved from a bot's index,
// with ordered per-session conversation memory.
//
// The Service type wires the full stack; the httpapi package exposes it
// over HTTP. Storage is embedded BadgerDB and the AI side talks to any
// OpenAI-compatible endpoint.
package ragchat
