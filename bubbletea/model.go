package bubbletea

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/visitnotes/consult"
	"github.com/visitnotes/consult/format"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the consultation streaming view.
type Model struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	run     SessionFunc
	req     consult.ConsultationRequest
	styles  Styles
	spinner spinner.Model

	// preview buffers narration for display while streaming. It is never
	// reconciled with the final payload.
	preview consult.Accumulator

	state   consult.SessionState
	payload consult.ConsultationSummaryResponse
	err     error

	cancel  context.CancelFunc
	chunkCh chan string
	doneCh  chan SessionDoneMsg
	ready   bool
}

// New creates a Model that will run one session for req. The session derives
// its lifetime from ctx; pressing Esc cancels it.
func New(ctx context.Context, run SessionFunc, req consult.ConsultationRequest, theme consult.Theme) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	sessionCtx, cancel := context.WithCancel(ctx)
	m := Model{
		run:     run,
		req:     req,
		styles:  NewStyles(theme),
		spinner: sp,
		state:   consult.StateIdle,
		cancel:  cancel,
		chunkCh: make(chan string, 64),
		doneCh:  make(chan SessionDoneMsg, 1),
	}
	m.startSession(sessionCtx)
	return m
}

// startSession launches the session goroutine. It bridges the synchronous
// chunk callback into the Bubble Tea loop over channels.
func (m *Model) startSession(ctx context.Context) {
	run, req, chunkCh, doneCh := m.run, m.req, m.chunkCh, m.doneCh
	go func() {
		payload, err := run(ctx, req, func(content string) {
			// Dropping chunks on cancellation is fine; the preview is
			// display-only and the session is ending anyway.
			select {
			case chunkCh <- content:
			case <-ctx.Done():
			}
		})
		doneCh <- SessionDoneMsg{Payload: payload, Err: err}
	}()
}

// State returns the session state as seen by the view.
func (m Model) State() consult.SessionState { return m.state }

// Err returns the session's failure, if any.
func (m Model) Err() error { return m.err }

// Payload returns the validated payload. Valid only when State is StateDone.
func (m Model) Payload() consult.ConsultationSummaryResponse { return m.payload }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, listenForSession(m.chunkCh, m.doneCh))
}

// listenForSession waits for the next chunk or the terminal resolution.
func listenForSession(chunkCh chan string, doneCh chan SessionDoneMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case content := <-chunkCh:
			return ChunkMsg{Content: content}
		case done := <-doneCh:
			return done
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state.Terminal() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ChunkMsg:
		if m.state == consult.StateIdle {
			m.state = consult.StateStreaming
		}
		m.preview.Append(msg.Content)
		if m.ready {
			m.Viewport.SetContent(m.styles.Preview.Render(m.preview.Preview()))
			m.Viewport.GotoBottom()
		}
		return m, listenForSession(m.chunkCh, m.doneCh)

	case SessionDoneMsg:
		if msg.Err != nil {
			m.state = consult.StateFailed
			var sessionErr *consult.SessionError
			if errors.As(msg.Err, &sessionErr) && sessionErr.Kind == consult.FailCancelled {
				m.state = consult.StateCancelled
			}
			m.err = msg.Err
		} else {
			m.state = consult.StateDone
			m.payload = msg.Payload
		}
		if m.ready {
			m.Viewport.SetContent(m.renderContent())
			m.Viewport.GotoTop()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	headerHeight := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-headerHeight-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancel()
		return m, tea.Quit
	case "esc":
		if !m.state.Terminal() {
			m.cancel()
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Consultation Summary"))
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) statusLine() string {
	switch m.state {
	case consult.StateDone:
		return m.styles.Success.Render("✓ complete") + m.styles.Muted.Render("  q quit · ↑/↓ scroll")
	case consult.StateFailed:
		return m.styles.Error.Render("✗ "+m.err.Error()) + m.styles.Muted.Render("  q quit")
	case consult.StateCancelled:
		return m.styles.Muted.Render("cancelled · q quit")
	default:
		return m.spinner.View() + m.styles.Muted.Render(" streaming · esc cancel · q quit")
	}
}

// renderContent renders the viewport body for the current state.
func (m Model) renderContent() string {
	switch m.state {
	case consult.StateDone:
		return m.renderDocuments()
	case consult.StateFailed:
		return m.styles.Error.Render(m.err.Error())
	default:
		if m.preview.Len() == 0 {
			return m.styles.Muted.Render("Waiting for the generation service...")
		}
		return m.styles.Preview.Render(m.preview.Preview())
	}
}

// renderDocuments lays out the three formatted documents in order.
func (m Model) renderDocuments() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("CLINICAL SUMMARY"))
	b.WriteString("\n\n")
	b.WriteString(format.ClinicalSummary(m.payload.ClinicalSummary))
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("NEXT STEPS"))
	b.WriteString("\n\n")
	b.WriteString(format.NextSteps(m.payload.NextSteps))
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("PATIENT EMAIL"))
	b.WriteString("\n\n")
	b.WriteString(format.PatientEmail(m.payload.PatientEmail))
	b.WriteString("\n")
	return b.String()
}
