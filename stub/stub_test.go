package stub_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visitnotes/consult"
	"github.com/visitnotes/consult/session"
	"github.com/visitnotes/consult/sse"
	"github.com/visitnotes/consult/stub"
)

func request() consult.ConsultationRequest {
	return consult.ConsultationRequest{
		PatientName: "John Doe",
		VisitDate:   "2025-11-15",
		Notes:       "Lower back pain radiating to both feet for two weeks.",
	}
}

// End-to-end over real HTTP: stub service -> sse transport -> session.
func TestStub_FullSessionRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(stub.New(stub.WithChunkSize(16)).Router())
	t.Cleanup(srv.Close)

	runner := session.New(
		sse.New(sse.WithBaseURL(srv.URL)),
		consult.StaticCredential("test-token"),
	)

	var preview consult.Accumulator
	payload, err := runner.Run(context.Background(), request(),
		session.WithChunkHandler(func(c string) { preview.Append(c) }),
	)
	require.NoError(t, err)

	assert.Equal(t, stub.SamplePayload("John Doe", "2025-11-15"), payload)
	// The narration replays the serialized payload, chunked.
	assert.Greater(t, preview.Chunks(), 1)
	assert.Contains(t, preview.Preview(), `"clinical_summary"`)
}

func TestStub_RejectsMissingCredential(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(stub.New().Router())
	t.Cleanup(srv.Close)

	client := sse.New(sse.WithBaseURL(srv.URL))
	_, err := client.Open(context.Background(), request(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing bearer credential")
}

func TestStub_RejectsIncompleteSubmission(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(stub.New().Router())
	t.Cleanup(srv.Close)

	req := request()
	req.Notes = ""
	client := sse.New(sse.WithBaseURL(srv.URL))
	_, err := client.Open(context.Background(), req, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestStub_ScriptedPayloadOverride(t *testing.T) {
	t.Parallel()

	payload := stub.SamplePayload("Jane Roe", "2025-12-01")
	payload.ModelVersion = "override"
	srv := httptest.NewServer(stub.New(
		stub.WithPayload(func(_, _ string) consult.ConsultationSummaryResponse { return payload }),
	).Router())
	t.Cleanup(srv.Close)

	runner := session.New(sse.New(sse.WithBaseURL(srv.URL)), consult.StaticCredential("t"))
	got, err := runner.Run(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "override", got.ModelVersion)
}
