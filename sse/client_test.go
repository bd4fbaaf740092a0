package sse_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visitnotes/consult"
	"github.com/visitnotes/consult/sse"
)

// pushResponse builds a data-only event-stream response for tests.
type pushResponse struct {
	frames []string
}

func (p pushResponse) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher, _ := w.(http.Flusher)
		for _, frame := range p.frames {
			fmt.Fprintf(w, "data: %s\n\n", frame)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func request() consult.ConsultationRequest {
	return consult.ConsultationRequest{
		PatientName: "John Doe",
		VisitDate:   "2025-11-15",
		Notes:       "Patient reports headache for two weeks.",
	}
}

func openStream(t *testing.T, handler http.Handler) consult.FrameStream {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := sse.New(sse.WithBaseURL(srv.URL))
	stream, err := client.Open(context.Background(), request(), "token-123")
	require.NoError(t, err)
	t.Cleanup(func() { stream.Close() })
	return stream
}

func collectFrames(t *testing.T, s consult.FrameStream) []string {
	t.Helper()
	var frames []string
	for {
		frame, err := s.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, string(frame))
	}
}

func TestOpen_SendsRequestAndCredential(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAccept, gotBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		pushResponse{frames: []string{`{"type":"error","message":"done"}`}}.handler()(w, r)
	})

	stream := openStream(t, handler)
	collectFrames(t, stream)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "text/event-stream", gotAccept)
	assert.JSONEq(t, `{
		"patient_name": "John Doe",
		"date_of_visit": "2025-11-15",
		"notes": "Patient reports headache for two weeks."
	}`, gotBody)
}

func TestStream_FramesInOrder(t *testing.T) {
	t.Parallel()

	stream := openStream(t, pushResponse{frames: []string{
		`{"type":"chunk","content":"Hel"}`,
		`{"type":"chunk","content":"lo"}`,
		`{"type":"complete","data":{}}`,
	}}.handler())

	frames := collectFrames(t, stream)
	require.Len(t, frames, 3)
	assert.Equal(t, consult.ChunkEnvelope{Content: "Hel"}, consult.ParseEnvelope([]byte(frames[0])))
	assert.Equal(t, consult.ChunkEnvelope{Content: "lo"}, consult.ParseEnvelope([]byte(frames[1])))
}

func TestStream_SkipsCommentsAndEventNames(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, ": keepalive\n\n")
		fmt.Fprint(w, "event: message\ndata: {\"type\":\"chunk\",\"content\":\"x\"}\n\n")
		fmt.Fprint(w, "\n\n")
		fmt.Fprint(w, "data: {\"type\":\"chunk\",\"content\":\"y\"}\n\n")
	})

	stream := openStream(t, handler)
	frames := collectFrames(t, stream)
	require.Len(t, frames, 2)
	assert.Equal(t, `{"type":"chunk","content":"x"}`, frames[0])
	assert.Equal(t, `{"type":"chunk","content":"y"}`, frames[1])
}

func TestStream_MultiLineDataJoinedWithNewline(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "data: first\ndata: second\n\n")
	})

	stream := openStream(t, handler)
	frames := collectFrames(t, stream)
	require.Len(t, frames, 1)
	assert.Equal(t, "first\nsecond", frames[0])
}

func TestStream_CleanCloseReportsEOF(t *testing.T) {
	t.Parallel()

	stream := openStream(t, pushResponse{}.handler())
	_, err := stream.Next()
	assert.ErrorIs(t, err, io.EOF)

	// EOF is sticky.
	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStream_NextAfterCloseFails(t *testing.T) {
	t.Parallel()

	stream := openStream(t, pushResponse{frames: []string{`{"type":"chunk","content":"x"}`}}.handler())
	require.NoError(t, stream.Close())

	_, err := stream.Next()
	assert.ErrorIs(t, err, consult.ErrStreamClosed)
}

func TestOpen_NonOKStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"unauthorized with detail", http.StatusUnauthorized, `{"detail":"invalid token"}`, "invalid token"},
		{"plain body", http.StatusBadGateway, "upstream exploded", "upstream exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			client := sse.New(sse.WithBaseURL(srv.URL))
			_, err := client.Open(context.Background(), request(), "token")
			require.Error(t, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("HTTP %d", tt.status))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestOpen_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := sse.New(sse.WithBaseURL(url))
	_, err := client.Open(context.Background(), request(), "token")
	require.Error(t, err)
}
