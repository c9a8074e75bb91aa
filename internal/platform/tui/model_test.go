package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pokerdice/internal/config"
	"github.com/vovakirdan/pokerdice/internal/core"
	"github.com/vovakirdan/pokerdice/internal/dice"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultPokerDiceConfig()
	cfg.Engine.SurfaceDelayTicks = 2
	cfg.Engine.SettleTicks = 2
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
	return NewModel(cfg, nil, rc, "tester", nil)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelPlaysARound(t *testing.T) {
	m := testModel(t)
	ctrl := m.Session().Controller()

	for range 2 {
		m = send(t, m, TickMsg(time.Now()))
	}
	if ctrl.Phase() != dice.PhasePointToSurface {
		t.Fatalf("Phase() = %v, expected point_to_surface", ctrl.Phase())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if ctrl.Phase() != dice.PhaseSwipeToPlay {
		t.Fatalf("Phase() = %v after enter, expected swipe_to_play", ctrl.Phase())
	}

	m = send(t, m, runes("c"))
	if ctrl.Style() != dice.StyleMetal {
		t.Errorf("Style() = %v after c, expected metal", ctrl.Style())
	}

	for range ctrl.MaxDice() {
		m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	if ctrl.Count() != ctrl.MaxDice() {
		t.Fatalf("Count() = %d, expected %d", ctrl.Count(), ctrl.MaxDice())
	}

	for range 3 {
		m = send(t, m, TickMsg(time.Now()))
	}
	if !m.Session().Finished() {
		t.Fatalf("round should be finished, score = %v", ctrl.Score())
	}

	view := m.View()
	if !strings.Contains(view, "Score:") || !strings.Contains(view, "Hand:") {
		t.Errorf("View() is missing the HUD:\n%s", view)
	}

	m = send(t, m, runes("r"))
	if ctrl.Phase() != dice.PhaseDetectSurface || ctrl.Count() != 0 {
		t.Errorf("after reset: phase = %v, count = %d", ctrl.Phase(), ctrl.Count())
	}
}

func TestModelQuit(t *testing.T) {
	m := testModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if got := next.(Model).View(); got != "" {
		t.Errorf("View() after quit = %q, expected empty", got)
	}
}

func TestModelResize(t *testing.T) {
	m := testModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}

	m = send(t, m, runes("?"))
	if m.screen.Height() != 26 {
		t.Errorf("screen height with full help = %d, expected 26", m.screen.Height())
	}
}

func TestModelScreenshotKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	m := testModel(t)

	msg := tea.KeyMsg{Type: tea.KeyCtrlS}
	if !key.Matches(msg, m.keys.Shot) {
		t.Fatal("ctrl+s should match the screenshot binding")
	}
	send(t, m, msg)

	shots, err := filepath.Glob(filepath.Join(home, ".pokerdice", "screenshots", "table_*.txt"))
	if err != nil || len(shots) != 1 {
		t.Fatalf("screenshots = %v, %v; expected one file", shots, err)
	}
	data, err := os.ReadFile(shots[0])
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "scanning") {
		t.Errorf("screenshot should contain the table:\n%s", data)
	}

	listed := false
	for _, col := range m.keys.FullHelp() {
		for _, b := range col {
			if b.Help().Key == "ctrl+s" {
				listed = true
			}
		}
	}
	if !listed {
		t.Error("full help should list the screenshot key")
	}
}
