package consult

import "encoding/json"

// Envelope is a sealed interface representing one decoded frame of the
// generation stream. The unexported marker method prevents external
// implementations. Terminal() reports whether the envelope ends the session.
type Envelope interface {
	envelope()
	Terminal() bool
}

// ChunkEnvelope carries one fragment of streamed narration text.
// Order-significant; no validity constraint beyond being text.
type ChunkEnvelope struct {
	Content string
}

func (ChunkEnvelope) envelope() {}

// Terminal returns false.
func (ChunkEnvelope) Terminal() bool { return false }

// CompleteEnvelope ends the session on the success path. Data is the raw
// candidate payload; it is not trusted until schema validation passes.
type CompleteEnvelope struct {
	Data json.RawMessage
}

func (CompleteEnvelope) envelope() {}

// Terminal returns true.
func (CompleteEnvelope) Terminal() bool { return true }

// ErrorEnvelope ends the session: the remote side aborted generation.
// Message is reported verbatim, never transformed.
type ErrorEnvelope struct {
	Message string
}

func (ErrorEnvelope) envelope() {}

// Terminal returns true.
func (ErrorEnvelope) Terminal() bool { return true }

// UnknownEnvelope wraps a frame that failed to decode or carried an
// unrecognized type. The session logs it and keeps waiting; a single
// malformed frame must not abort an otherwise healthy stream.
type UnknownEnvelope struct {
	Raw []byte
}

func (UnknownEnvelope) envelope() {}

// Terminal returns false.
func (UnknownEnvelope) Terminal() bool { return false }

// Interface compliance checks.
var (
	_ Envelope = ChunkEnvelope{}
	_ Envelope = CompleteEnvelope{}
	_ Envelope = ErrorEnvelope{}
	_ Envelope = UnknownEnvelope{}
)

// wireFrame is the wire representation of one pushed message.
type wireFrame struct {
	Type    string          `json:"type"`
	Content string          `json:"content"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// ParseEnvelope decodes one raw frame into exactly one Envelope. It never
// fails: malformed JSON or a type outside {chunk, complete, error} comes
// back as an UnknownEnvelope carrying the raw bytes.
func ParseEnvelope(raw []byte) Envelope {
	var f wireFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		return UnknownEnvelope{Raw: raw}
	}
	switch f.Type {
	case "chunk":
		return ChunkEnvelope{Content: f.Content}
	case "complete":
		return CompleteEnvelope{Data: f.Data}
	case "error":
		return ErrorEnvelope{Message: f.Message}
	default:
		return UnknownEnvelope{Raw: raw}
	}
}
