package mock_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visitnotes/consult"
	"github.com/visitnotes/consult/mock"
)

func TestScriptedStream_ReplaysThenEOF(t *testing.T) {
	t.Parallel()

	s := mock.ScriptedStream(`{"type":"chunk","content":"a"}`, `{"type":"chunk","content":"b"}`)

	first, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"chunk","content":"a"}`, string(first))

	second, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"chunk","content":"b"}`, string(second))

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, s.Close())
}

func TestScriptedTransport_OpensScriptedStream(t *testing.T) {
	t.Parallel()

	tr := mock.ScriptedTransport(`{"type":"error","message":"boom"}`)
	stream, err := tr.Open(context.Background(), consult.ConsultationRequest{}, "token")
	require.NoError(t, err)

	frame, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, consult.ErrorEnvelope{Message: "boom"}, consult.ParseEnvelope(frame))
}
