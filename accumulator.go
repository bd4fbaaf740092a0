package consult

import "strings"

// Accumulator buffers streamed narration for live preview. It is pure state:
// chunks are concatenated in arrival order, never reordered or deduplicated,
// and there is no way to rewind. A new session starts a fresh Accumulator.
//
// The buffer is preview-only. The final result comes from the Complete
// envelope's own payload; the two are never reconciled.
type Accumulator struct {
	buf    strings.Builder
	chunks int
}

// Append adds one chunk of narration text.
func (a *Accumulator) Append(content string) {
	a.buf.WriteString(content)
	a.chunks++
}

// Preview returns everything received so far, in arrival order.
func (a *Accumulator) Preview() string { return a.buf.String() }

// Chunks returns the number of chunks appended.
func (a *Accumulator) Chunks() int { return a.chunks }

// Len returns the buffered text length in bytes.
func (a *Accumulator) Len() int { return a.buf.Len() }
