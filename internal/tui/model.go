// Package tui is the terminal front end: a bubbletea program that renders the
// application state and turns key presses into state operations.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/guit-go/internal/app"
)

const DefaultTickInterval = 250 * time.Millisecond

type tickMsg time.Time

// ReloadMsg asks the model to query the repository again.
type ReloadMsg struct{}

type snapshotMsg struct {
	snap app.Snapshot
}

type Model struct {
	state  *app.State
	keys   keyMap
	help   help.Model
	styles Styles
	tick   time.Duration

	// reloading is set while a query runs; further reload requests are
	// coalesced into pending.
	reloading bool
	pending   bool

	width  int
	height int
}

func NewModel(state *app.State, styles Styles, tick time.Duration) Model {
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styles.Author
	h.Styles.FullKey = styles.Author
	h.Styles.ShortDesc = styles.Dim
	h.Styles.FullDesc = styles.Dim
	return Model{
		state:  state,
		keys:   defaultKeyMap(),
		help:   h,
		styles: styles,
		tick:   tick,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// queryCmd runs the repository queries off the event loop.
func (m Model) queryCmd() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		return snapshotMsg{snap: state.Query()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = max(msg.Width-borderSize-paddingSize, 0)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tickMsg:
		m.state.OnTick()
		cmd = m.tickCmd()
	case ReloadMsg:
		cmd = m.requestReload()
	case snapshotMsg:
		m.state.Apply(msg.snap)
		m.reloading = false
		if m.pending {
			m.pending = false
			cmd = m.requestReload()
		}
	}
	if m.state.ShouldQuit() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) requestReload() tea.Cmd {
	if m.reloading {
		m.pending = true
		return nil
	}
	slog.Debug("reload requested")
	m.reloading = true
	return m.queryCmd()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.state.RequestQuit()
	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelectionUp()
	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelectionDown()
	case key.Matches(msg, m.keys.NextPane):
		m.state.AdvancePane()
	case key.Matches(msg, m.keys.Right):
		m.state.MoveRight()
	case key.Matches(msg, m.keys.Left):
		m.state.MoveLeft()
	case key.Matches(msg, m.keys.Reload):
		return m.requestReload()
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
		}
		m.state.HandleCharacter(msg.Runes[0])
	}
	return nil
}

// State exposes the application state, mainly for tests.
func (m Model) State() *app.State {
	return m.state
}
