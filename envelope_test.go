package consult_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visitnotes/consult"
)

func TestParseEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want consult.Envelope
	}{
		{
			name: "chunk",
			raw:  `{"type":"chunk","content":"partial text"}`,
			want: consult.ChunkEnvelope{Content: "partial text"},
		},
		{
			name: "chunk with empty content",
			raw:  `{"type":"chunk","content":""}`,
			want: consult.ChunkEnvelope{},
		},
		{
			name: "error",
			raw:  `{"type":"error","message":"generation aborted"}`,
			want: consult.ErrorEnvelope{Message: "generation aborted"},
		},
		{
			name: "unknown type",
			raw:  `{"type":"heartbeat"}`,
			want: consult.UnknownEnvelope{Raw: []byte(`{"type":"heartbeat"}`)},
		},
		{
			name: "missing type",
			raw:  `{"content":"orphan"}`,
			want: consult.UnknownEnvelope{Raw: []byte(`{"content":"orphan"}`)},
		},
		{
			name: "malformed JSON",
			raw:  `{"type":"chunk"`,
			want: consult.UnknownEnvelope{Raw: []byte(`{"type":"chunk"`)},
		},
		{
			name: "not JSON at all",
			raw:  `<html>502 Bad Gateway</html>`,
			want: consult.UnknownEnvelope{Raw: []byte(`<html>502 Bad Gateway</html>`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := consult.ParseEnvelope([]byte(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEnvelope_Complete(t *testing.T) {
	t.Parallel()

	raw := `{"type":"complete","data":{"generation_timestamp":"2025-11-09T10:30:00Z"}}`
	env := consult.ParseEnvelope([]byte(raw))

	complete, ok := env.(consult.CompleteEnvelope)
	require.True(t, ok)
	assert.JSONEq(t, `{"generation_timestamp":"2025-11-09T10:30:00Z"}`, string(complete.Data))
}

func TestParseEnvelope_CompleteCarriesRawData(t *testing.T) {
	t.Parallel()

	// The payload passes through undecoded; validation happens downstream.
	raw := `{"type":"complete","data":{"clinical_summary":{"assessments":"not-an-array"}}}`
	env := consult.ParseEnvelope([]byte(raw))

	complete, ok := env.(consult.CompleteEnvelope)
	require.True(t, ok)
	assert.NotEmpty(t, []byte(complete.Data))
	assert.True(t, json.Valid(complete.Data))
}

func TestEnvelope_Terminal(t *testing.T) {
	t.Parallel()

	assert.False(t, consult.ChunkEnvelope{}.Terminal())
	assert.False(t, consult.UnknownEnvelope{}.Terminal())
	assert.True(t, consult.CompleteEnvelope{}.Terminal())
	assert.True(t, consult.ErrorEnvelope{}.Terminal())
}
