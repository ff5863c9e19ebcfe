package tui

import (
	"log"
	"time"

	"twitch-monitor/internal/config"
	"twitch-monitor/internal/twitch"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type State int

const (
	StateStarting State = iota
	StatePolling
	StateCountingDown
	StateErrorBackoff
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "Starting"
	case StatePolling:
		return "Polling"
	case StateCountingDown:
		return "CountingDown"
	case StateErrorBackoff:
		return "ErrorBackoff"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Service is the part of the Twitch client the loop depends on.
type Service interface {
	Authenticate() (string, error)
	FetchStatuses(names []string) (twitch.Snapshot, error)
}

type authResultMsg struct{ err error }

type fetchResultMsg struct {
	snapshot twitch.Snapshot
	err      error
}

// Timer messages carry the sequence number current when they were scheduled;
// any state change bumps it so late timers are dropped.
type countdownMsg struct{ seq int }
type backoffDoneMsg struct{ seq int }

const footerHeight = 2

type Model struct {
	state    State
	service  Service
	config   config.Config
	renderer Renderer
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	authenticated bool
	snapshot      twitch.Snapshot
	lastUpdate    time.Time
	remaining     int
	lastErr       error
	errAt         time.Time
	fatal         error
	seq           int

	now func() time.Time
}

func New(cfg config.Config, service Service) Model {
	return Model{
		state:    StateStarting,
		service:  service,
		config:   cfg,
		renderer: NewRenderer(NewThemeStyler(cfg.Theme), cfg.Style.DateFormat),
		keys:     defaultKeyMap(),
		now:      time.Now,
	}
}

func (m Model) State() State {
	return m.state
}

// Err returns the startup failure that stopped the loop, if any.
func (m Model) Err() error {
	return m.fatal
}

func (m Model) Init() tea.Cmd {
	return m.authenticateCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		if msg.err != nil {
			log.Printf("AUTH: %v", msg.err)
			m.fatal = msg.err
			return m, m.stop()
		}
		m.authenticated = true
		return m, m.poll()

	case fetchResultMsg:
		if m.state != StatePolling {
			return m, nil
		}
		return m, m.handleFetch(msg)

	case countdownMsg:
		if msg.seq != m.seq || m.state != StateCountingDown {
			return m, nil
		}
		m.remaining--
		if m.remaining <= 0 {
			return m, m.poll()
		}
		return m, m.tick()

	case backoffDoneMsg:
		if msg.seq != m.seq || m.state != StateErrorBackoff {
			return m, nil
		}
		return m, m.poll()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.stop()
		case key.Matches(msg, m.keys.Poll):
			if m.state == StateCountingDown || m.state == StateErrorBackoff {
				return m, m.poll()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.updateViewport(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		m.footerView(),
	)
}

func (m *Model) poll() tea.Cmd {
	m.enter(StatePolling)
	return m.fetchCmd()
}

func (m *Model) handleFetch(msg fetchResultMsg) tea.Cmd {
	if msg.err != nil {
		m.lastErr = msg.err
		m.errAt = m.now()
		m.enter(StateErrorBackoff)

		seq := m.seq
		return tea.Tick(m.config.PollInterval, func(_ time.Time) tea.Msg {
			return backoffDoneMsg{seq: seq}
		})
	}

	m.snapshot = msg.snapshot
	m.lastUpdate = m.now()
	m.lastErr = nil
	m.remaining = int(m.config.PollInterval / time.Second)
	m.enter(StateCountingDown)
	return m.tick()
}

func (m *Model) stop() tea.Cmd {
	m.enter(StateStopped)
	return tea.Quit
}

func (m *Model) enter(state State) {
	m.state = state
	m.seq++
	m.refreshViewport()
}

func (m *Model) tick() tea.Cmd {
	m.refreshViewport()

	seq := m.seq
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return countdownMsg{seq: seq}
	})
}

func (m *Model) authenticateCmd() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		_, err := service.Authenticate()
		return authResultMsg{err: err}
	}
}

func (m *Model) fetchCmd() tea.Cmd {
	service := m.service
	names := m.config.Channels
	return func() tea.Msg {
		snapshot, err := service.FetchStatuses(names)
		return fetchResultMsg{snapshot: snapshot, err: err}
	}
}

func (m Model) content() string {
	switch {
	case m.state == StateErrorBackoff:
		return m.renderer.RenderError(m.lastErr, m.errAt, m.config.PollInterval)
	case m.snapshot == nil:
		return m.renderer.RenderStarting(len(m.config.Channels), m.authenticated)
	default:
		return m.renderer.Body(m.snapshot, m.lastUpdate)
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
}

func (m *Model) updateViewport(msg tea.WindowSizeMsg) {
	vpHeight := msg.Height - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	m.width = msg.Width
	m.height = msg.Height

	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	m.refreshViewport()
}
