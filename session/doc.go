// Package session provides in-memory, session-scoped conversation memory.
//
// Each session holds an ordered, append-only message log. The engine appends
// a (user, assistant) pair only after a generation completes cleanly, so a
// session's history always reflects finished turns. Sessions are created
// lazily on first use and live until cleared or evicted.
package session
