// Package stub is a local stand-in for the remote generation service. It
// speaks the same push protocol the production service does: an
// authenticated POST to /api/consultation answered with data-only
// event-stream frames, narration chunks first, then a terminal frame. It
// exists for development and integration-style tests; it generates nothing,
// it replays a scripted summary.
package stub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/visitnotes/consult"
)

// Server replays a scripted consultation summary over the push protocol.
type Server struct {
	logger     *slog.Logger
	frameDelay time.Duration
	chunkSize  int
	payloadFn  func(patientName, visitDate string) consult.ConsultationSummaryResponse
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithFrameDelay sets the pause between frames, simulating generation
// latency. Defaults to zero.
func WithFrameDelay(d time.Duration) Option {
	return func(s *Server) { s.frameDelay = d }
}

// WithChunkSize sets the narration chunk size in bytes.
func WithChunkSize(n int) Option {
	return func(s *Server) { s.chunkSize = n }
}

// WithPayload overrides the scripted payload.
func WithPayload(fn func(patientName, visitDate string) consult.ConsultationSummaryResponse) Option {
	return func(s *Server) { s.payloadFn = fn }
}

// New creates a stub Server.
func New(opts ...Option) *Server {
	s := &Server{
		logger:    slog.Default(),
		chunkSize: 32,
		payloadFn: SamplePayload,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router returns the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/api/consultation", s.handleConsultation)
	return r
}

// visitRequest mirrors the production submission shape.
type visitRequest struct {
	PatientName string `json:"patient_name"`
	DateOfVisit string `json:"date_of_visit"`
	Notes       string `json:"notes"`
}

func (s *Server) handleConsultation(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") == "" {
		writeDetail(w, http.StatusUnauthorized, "missing bearer credential")
		return
	}

	var req visitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PatientName == "" || req.DateOfVisit == "" || req.Notes == "" {
		writeDetail(w, http.StatusBadRequest, "patient_name, date_of_visit and notes are required")
		return
	}

	payload := s.payloadFn(req.PatientName, req.DateOfVisit)
	data, err := json.Marshal(payload)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to encode payload")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	s.logger.Debug("streaming scripted summary",
		slog.String("patient", req.PatientName),
		slog.Int("payload_bytes", len(data)),
	)

	// The production service narrates the JSON as it is generated; replay
	// the serialized payload in chunks the same way.
	for start := 0; start < len(data); start += s.chunkSize {
		if r.Context().Err() != nil {
			return
		}
		end := min(start+s.chunkSize, len(data))
		writeFrame(w, flusher, map[string]string{
			"type":    "chunk",
			"content": string(data[start:end]),
		})
		if s.frameDelay > 0 {
			time.Sleep(s.frameDelay)
		}
	}

	writeFrame(w, flusher, struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{Type: "complete", Data: data})
}

func writeFrame(w http.ResponseWriter, flusher http.Flusher, frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	if flusher != nil {
		flusher.Flush()
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
