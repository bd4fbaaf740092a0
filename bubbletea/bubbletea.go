// Package bubbletea provides the live streaming view for a consultation
// session: a spinner while connecting, the narration preview while the
// service streams, and the three formatted documents once the payload
// validates.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/visitnotes/consult"
)

// SessionFunc runs one streaming session. onChunk is called for each
// narration chunk in arrival order. The function blocks until the session
// resolves or ctx is cancelled.
type SessionFunc func(ctx context.Context, req consult.ConsultationRequest, onChunk func(content string)) (consult.ConsultationSummaryResponse, error)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits and returns the final model so the caller can read the resolution.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	fm, ok := final.(Model)
	if !ok {
		return m, err
	}
	return fm, err
}

// ChunkMsg delivers one narration chunk to the model.
type ChunkMsg struct {
	Content string
}

// SessionDoneMsg signals that the session resolved.
type SessionDoneMsg struct {
	Payload consult.ConsultationSummaryResponse
	Err     error
}
