package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pokerdice/internal/config"
	"github.com/vovakirdan/pokerdice/internal/core"
	"github.com/vovakirdan/pokerdice/internal/dice"
	"github.com/vovakirdan/pokerdice/internal/engine"
	"github.com/vovakirdan/pokerdice/internal/session"
	"github.com/vovakirdan/pokerdice/internal/storage"
)

// Model is the Bubble Tea model for one poker dice table.
type Model struct {
	sess   *session.Session
	eng    *engine.Scripted
	events *dice.Queue
	screen *core.Screen
	config core.RuntimeConfig
	keys   TableKeyMap
	help   help.Model

	lastEvent string
	quitting  bool
}

// NewModel wires a controller, a scripted engine and a session from the
// table configuration. store may be nil, in which case rounds are not saved.
func NewModel(cfg config.PokerDiceConfig, store *storage.Store, rc core.RuntimeConfig, player string, logger *log.Logger) Model {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	ctrl := dice.New(cfg.DiceOptions(rc.Seed))
	queue := &dice.Queue{}
	ctrl.Subscribe(queue)

	eng := engine.NewScripted(cfg.ScriptedEngine())

	opts := []session.Option{session.WithPlayer(player)}
	if logger != nil {
		opts = append(opts, session.WithLogger(logger))
	}
	if store != nil {
		opts = append(opts, session.WithRecorder(store))
	}

	return Model{
		sess:   session.New(ctrl, eng, opts...),
		eng:    eng,
		events: queue,
		screen: core.NewScreen(rc.ScreenW, max(rc.ScreenH-1, 1)),
		config: rc,
		keys:   DefaultTableKeyMap(),
		help:   help.New(),
	}
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session {
	return m.sess
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		m.sess.Step()
		m.drainEvents()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
	case key.Matches(msg, m.keys.Throw):
		if err := m.sess.Throw(); err != nil && !errors.Is(err, dice.ErrMaxDiceReached) {
			m.lastEvent = err.Error()
		}
	case key.Matches(msg, m.keys.Start):
		m.sess.Start()
	case key.Matches(msg, m.keys.Style):
		m.sess.ChangeStyle()
	case key.Matches(msg, m.keys.Collect):
		m.sess.Collect()
	case key.Matches(msg, m.keys.Reset):
		m.sess.Reset()
	case key.Matches(msg, m.keys.Lose):
		m.eng.LoseSurface()
	case key.Matches(msg, m.keys.Left):
		m.sess.Aim(aimStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.sess.Aim(-aimStep, 0)
	case key.Matches(msg, m.keys.Up):
		m.sess.Aim(0, -aimStep)
	case key.Matches(msg, m.keys.Down):
		m.sess.Aim(0, aimStep)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}

	m.drainEvents()
	return m, nil
}

// layout sizes the table screen to leave room for the help bar.
func (m *Model) layout() {
	helpRows := 1
	if m.help.ShowAll {
		helpRows = 0
		for _, col := range m.keys.FullHelp() {
			helpRows = max(helpRows, len(col))
		}
	}
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-helpRows, 1))
}

func (m *Model) drainEvents() {
	for _, e := range m.events.Drain() {
		if line := describeEvent(e); line != "" {
			m.lastEvent = line
		}
	}
}

// saveScreenshot saves the current table to a text file.
func (m *Model) saveScreenshot() {
	DrawTable(m.screen, m.sess, m.eng, m.lastEvent)

	dir := filepath.Join(os.Getenv("HOME"), ".pokerdice", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("table_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the table and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawTable(m.screen, m.sess, m.eng, m.lastEvent)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a local table in the terminal.
func Run(cfg config.PokerDiceConfig, store *storage.Store, rc core.RuntimeConfig, player string) error {
	model := NewModel(cfg, store, rc, player, nil)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
