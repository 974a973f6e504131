package chat

import (
	"strings"
	"sync"
)

// fragmentChannelSize bounds the stream's fragment channel so a slow
// consumer backpressures token production instead of buffering unboundedly.
const fragmentChannelSize = 16

// minFragmentLength is the coalescing threshold: tokens accumulate until at
// least this many bytes (or a newline) are buffered before a fragment is
// emitted.
const minFragmentLength = 10

// Stream is an in-flight chat response. Fragments arrive on Fragments() as
// they are generated; after the channel closes, Err reports whether the
// response completed cleanly and Text returns the full response.
type Stream struct {
	sessionID string
	fragments chan string

	mu   sync.Mutex
	err  error
	text string
}

func newStream(sessionID string) *Stream {
	return &Stream{
		sessionID: sessionID,
		fragments: make(chan string, fragmentChannelSize),
	}
}

// SessionID returns the session this response belongs to. When the caller
// passed an empty session ID, this is the freshly assigned one.
func (s *Stream) SessionID() string {
	return s.sessionID
}

// Fragments returns the channel of response fragments. The channel is
// closed when generation finishes, whether cleanly or not.
func (s *Stream) Fragments() <-chan string {
	return s.fragments
}

// Err reports the generation outcome. It is meaningful only after
// Fragments() is closed; a nil result means the response completed cleanly.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Text returns the complete response text accumulated so far. After the
// stream closes cleanly it is the full response.
func (s *Stream) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *Stream) finish(text string, err error) {
	s.mu.Lock()
	s.text = text
	s.err = err
	s.mu.Unlock()
	close(s.fragments)
}

// fragmentBuffer coalesces model tokens into reader-friendly fragments:
// a fragment is released once the buffer holds a newline or reaches
// minFragmentLength bytes.
type fragmentBuffer struct {
	buf strings.Builder
}

// add appends a token and returns the fragment to emit, if any.
func (b *fragmentBuffer) add(token string) (string, bool) {
	b.buf.WriteString(token)
	if b.buf.Len() >= minFragmentLength || strings.Contains(token, "\n") {
		out := b.buf.String()
		b.buf.Reset()
		return out, true
	}
	return "", false
}

// flush returns whatever remains buffered.
func (b *fragmentBuffer) flush() (string, bool) {
	if b.buf.Len() == 0 {
		return "", false
	}
	out := b.buf.String()
	b.buf.Reset()
	return out, true
}
