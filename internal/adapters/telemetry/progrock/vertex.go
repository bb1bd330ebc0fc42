package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Span wraps a *progrock.VertexRecorder as a ports.Span.
type Span struct {
	vertex *progrock.VertexRecorder
}

// Write streams captured child-process output into the vertex.
func (s *Span) Write(p []byte) (n int, err error) {
	return s.vertex.Stdout().Write(p)
}

// End marks the vertex as finished, successfully or with an error.
func (s *Span) End(err error) {
	s.vertex.Done(err)
}

// Cached marks the vertex as served from the result cache.
func (s *Span) Cached() {
	s.vertex.Cached()
}

// SetAttribute records a key-value pair as a line on the vertex output.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}
