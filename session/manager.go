package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/visitnotes/consult"
)

// Manager enforces the one-live-session policy: at most one push connection
// per caller. Starting a new session cancels the previous one, and chunk and
// state deliveries from a superseded session are discarded instead of being
// applied after a newer session has started.
type Manager struct {
	runner *Runner

	mu      sync.Mutex
	current string // identifier of the active session, "" when none
	cancel  context.CancelFunc
}

// NewManager creates a Manager around a Runner.
func NewManager(runner *Runner) *Manager {
	return &Manager{runner: runner}
}

// Handle identifies one started session and carries its terminal resolution.
type Handle struct {
	// ID tags every delivery belonging to this session.
	ID string
	// Result yields the session's single terminal resolution.
	Result <-chan Result
}

// Result pairs a terminal resolution with the session that produced it.
type Result struct {
	SessionID string
	Payload   consult.ConsultationSummaryResponse
	Err       error
}

// Handlers are the caller's delivery callbacks. Either may be nil. They are
// invoked only while their session is still the current one.
type Handlers struct {
	OnChunk func(content string)
	OnState func(state consult.SessionState)
}

// Start cancels any active session and begins a new one. The returned
// Handle's Result channel is buffered; the resolution is delivered even when
// the session has been superseded, tagged with its session ID so the caller
// can discard it.
func (m *Manager) Start(ctx context.Context, req consult.ConsultationRequest, h Handlers) *Handle {
	id := uuid.NewString()

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.current = id
	m.cancel = cancel
	m.mu.Unlock()

	opts := []RunOption{WithSessionID(id)}
	if h.OnChunk != nil {
		opts = append(opts, WithChunkHandler(func(content string) {
			if m.Current() == id {
				h.OnChunk(content)
			}
		}))
	}
	if h.OnState != nil {
		opts = append(opts, WithStateHandler(func(state consult.SessionState) {
			if m.Current() == id {
				h.OnState(state)
			}
		}))
	}

	resultCh := make(chan Result, 1)
	go func() {
		payload, err := m.runner.Run(runCtx, req, opts...)
		cancel()
		m.mu.Lock()
		if m.current == id {
			m.current = ""
			m.cancel = nil
		}
		m.mu.Unlock()
		resultCh <- Result{SessionID: id, Payload: payload, Err: err}
	}()

	return &Handle{ID: id, Result: resultCh}
}

// Current returns the identifier of the active session, or "" when none.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Cancel stops the active session, if any. Cancelling after a session has
// already resolved is a no-op.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		m.current = ""
	}
}
