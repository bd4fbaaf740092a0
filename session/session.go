// Package session runs the streaming consultation workflow: it opens one
// push connection per submission, feeds each inbound frame through the
// envelope parser, accumulates narration for preview, validates the terminal
// payload, and reports a single terminal resolution to the caller.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/visitnotes/consult"
	"github.com/visitnotes/consult/schema"
)

// Runner drives streaming sessions against a Transport. A Runner is
// configuration only; all per-session state lives inside Run, so a Runner
// may be reused across submissions.
type Runner struct {
	transport consult.Transport
	creds     consult.CredentialSource
	logger    *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner with the given transport and credential source.
func New(transport consult.Transport, creds consult.CredentialSource, opts ...Option) *Runner {
	r := &Runner{
		transport: transport,
		creds:     creds,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	sessionID string
	onChunk   func(content string)
	onState   func(state consult.SessionState)
}

// WithChunkHandler sets a callback invoked synchronously for each narration
// chunk, in arrival order. Useful for live preview; the handler must not
// block.
func WithChunkHandler(h func(content string)) RunOption {
	return func(c *runConfig) { c.onChunk = h }
}

// WithStateHandler sets a callback invoked synchronously on every state
// transition.
func WithStateHandler(h func(state consult.SessionState)) RunOption {
	return func(c *runConfig) { c.onState = h }
}

// WithSessionID overrides the generated session identifier. Used by Manager
// to correlate deliveries with the session that produced them.
func WithSessionID(id string) RunOption {
	return func(c *runConfig) { c.sessionID = id }
}

// run is the state owned by one session. It is created fresh per Run and
// never shared, so a stale session cannot touch a newer one's state.
type run struct {
	id     string
	logger *slog.Logger
	cfg    runConfig
	state  consult.SessionState
	acc    consult.Accumulator
}

func (s *run) setState(state consult.SessionState) {
	if s.state.Terminal() {
		// Exactly one terminal resolution per session.
		return
	}
	s.state = state
	if s.cfg.onState != nil {
		s.cfg.onState(state)
	}
}

func (s *run) fail(kind consult.FailureKind, err error) *consult.SessionError {
	if kind == consult.FailCancelled {
		s.setState(consult.StateCancelled)
	} else {
		s.setState(consult.StateFailed)
	}
	s.logger.Debug("session failed",
		slog.String("session_id", s.id),
		slog.String("kind", kind.String()),
		slog.Any("error", err),
	)
	return &consult.SessionError{Kind: kind, Err: err}
}

// Run executes one session to its single terminal resolution. On success the
// returned payload has passed full schema validation and is safe to render
// or export. On failure the error is a *consult.SessionError whose Kind
// classifies the outcome; for a schema violation, errors.As exposes the
// *schema.ValidationError with every field-level issue.
//
// Cancellation is cooperative: the context is observed by the transport
// between frames. Run never retries; a transport failure is terminal and the
// caller may start a fresh session.
func (r *Runner) Run(ctx context.Context, req consult.ConsultationRequest, opts ...RunOption) (consult.ConsultationSummaryResponse, error) {
	var zero consult.ConsultationSummaryResponse

	var cfg runConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.sessionID == "" {
		cfg.sessionID = uuid.NewString()
	}

	if err := req.Validate(); err != nil {
		return zero, fmt.Errorf("session: %w", err)
	}

	s := &run{id: cfg.sessionID, logger: r.logger, cfg: cfg, state: consult.StateIdle}

	credential, err := r.creds.Credential(ctx)
	if err != nil {
		return zero, s.fail(consult.FailUnauthenticated, err)
	}
	if credential == "" {
		return zero, s.fail(consult.FailUnauthenticated, consult.ErrNoCredential)
	}

	s.setState(consult.StateConnecting)
	stream, err := r.transport.Open(ctx, req, credential)
	if err != nil {
		if ctx.Err() != nil {
			return zero, s.fail(consult.FailCancelled, context.Cause(ctx))
		}
		return zero, s.fail(consult.FailTransport, err)
	}
	defer stream.Close()

	s.setState(consult.StateStreaming)
	r.logger.Debug("session streaming", slog.String("session_id", s.id))

	for {
		frame, err := stream.Next()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				cause := context.Cause(ctx)
				if cause == nil {
					cause = err
				}
				return zero, s.fail(consult.FailCancelled, cause)
			}
			if errors.Is(err, io.EOF) {
				err = errors.New("stream ended without a terminal envelope")
			}
			return zero, s.fail(consult.FailTransport, err)
		}

		switch env := consult.ParseEnvelope(frame).(type) {
		case consult.ChunkEnvelope:
			s.acc.Append(env.Content)
			if cfg.onChunk != nil {
				cfg.onChunk(env.Content)
			}

		case consult.UnknownEnvelope:
			// Recovered locally, never surfaced. The session keeps waiting.
			r.logger.Warn("skipping unrecognized frame",
				slog.String("session_id", s.id),
				slog.Int("bytes", len(env.Raw)),
			)

		case consult.ErrorEnvelope:
			// Message passes through verbatim for display.
			return zero, s.fail(consult.FailRemote, errors.New(env.Message))

		case consult.CompleteEnvelope:
			s.setState(consult.StateCompleting)
			payload, err := schema.Validate(env.Data)
			if err != nil {
				return zero, s.fail(consult.FailSchema, err)
			}
			s.setState(consult.StateDone)
			r.logger.Debug("session complete",
				slog.String("session_id", s.id),
				slog.Int("chunks", s.acc.Chunks()),
				slog.Int("preview_bytes", s.acc.Len()),
			)
			return payload, nil
		}
	}
}
